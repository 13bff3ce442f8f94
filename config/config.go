// Package config loads command line settings and batch job files.
package config

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/ericlevine/zxingrs/reedsolomon"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ZXINGRS"

// FieldConfig selects the Galois field. Name picks a preset; when it is
// empty the custom parameters are used.
type FieldConfig struct {
	Name          string `mapstructure:"name"`
	Primitive     int    `mapstructure:"primitive"`
	Size          int    `mapstructure:"size"`
	Generator     int    `mapstructure:"generator"`
	GeneratorBase int    `mapstructure:"generator_base"`
}

// Build resolves the configured field.
func (c FieldConfig) Build() (*reedsolomon.GenericGF, error) {
	if c.Name != "" {
		return reedsolomon.FieldByName(c.Name)
	}
	return reedsolomon.NewField(reedsolomon.FieldParams{
		Primitive:     c.Primitive,
		Size:          c.Size,
		Generator:     c.Generator,
		GeneratorBase: c.GeneratorBase,
	})
}

// Config holds the settings shared by every command.
type Config struct {
	Field        FieldConfig `mapstructure:"field"`
	Workers      int         `mapstructure:"workers"`
	Verbosity    int         `mapstructure:"verbosity"`
	CharacterSet string      `mapstructure:"charset"`
	Color        bool        `mapstructure:"color"`
}

// SetDefaults installs the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("field.name", "qrcode")
	v.SetDefault("field.primitive", 0)
	v.SetDefault("field.size", 256)
	v.SetDefault("field.generator", 2)
	v.SetDefault("field.generator_base", 0)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("verbosity", 3)
	v.SetDefault("charset", "")
	v.SetDefault("color", true)
}

// New returns a viper instance with defaults and environment bindings. If
// path is not empty the file is read as well; its format follows the
// extension (toml, yaml, json).
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return v, nil
}

// Decode extracts a validated Config from v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.Workers < 1 {
		return nil, errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > 5 {
		return nil, errors.Errorf("verbosity must be in [0, 5], got %d", cfg.Verbosity)
	}
	return &cfg, nil
}

// Load is New followed by Decode.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}
