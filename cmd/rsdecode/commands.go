package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	zxingrs "github.com/ericlevine/zxingrs"
	"github.com/ericlevine/zxingrs/batch"
	"github.com/ericlevine/zxingrs/config"
	"github.com/ericlevine/zxingrs/internal"
	"github.com/ericlevine/zxingrs/reedsolomon"
)

// errBlocksFailed makes the process exit non-zero after the report has been
// printed.
var errBlocksFailed = errors.New("one or more blocks could not be corrected")

type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rsdecode",
		Short: "Correct barcode codewords with Reed-Solomon decoding.",
		Long: `rsdecode repairs the codewords sampled from a 2-D barcode symbol.
Codewords are given in hex, data codewords first, followed by the
error-correction codewords. Up to half as many errors as there are
error-correction codewords can be repaired.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (toml, yaml or json)")
	root.PersistentFlags().String("field", "qrcode", "Galois field preset (qrcode, datamatrix)")
	root.PersistentFlags().Int("verbosity", 3, "Log level 0-5 (0=silent, 5=trace)")
	root.PersistentFlags().Bool("color", true, "Highlight corrected codewords")
	root.PersistentFlags().String("charset", "", "Character set of the data codewords (guessed when empty)")

	root.AddCommand(a.decodeCommand(), a.batchCommand(), a.fieldCommand())
	return root
}

// load reads the configuration. Flags given on the command line win over
// environment variables, which win over the config file.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return err
	}
	for key, flag := range map[string]string{
		"field.name": "field",
		"verbosity":  "verbosity",
		"color":      "color",
		"charset":    "charset",
		"workers":    "workers",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "bind flag %s", flag)
			}
		}
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	setupLogging(cmd.ErrOrStderr(), cfg.Verbosity)
	color.NoColor = color.NoColor || !cfg.Color
	return nil
}

func setupLogging(w io.Writer, verbosity int) {
	var lvl slog.Level
	switch {
	case verbosity == 0:
		log.SetDefault(log.NewLogger(log.DiscardHandler()))
		return
	case verbosity == 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, w == os.Stderr)))
}

func (a *app) decodeCommand() *cobra.Command {
	var ec int
	cmd := &cobra.Command{
		Use:   "decode <hex codewords>",
		Short: "Correct a single block of codewords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := a.cfg.Field.Build()
			if err != nil {
				return err
			}
			codewords, err := internal.ParseCodewords(args[0])
			if err != nil {
				return err
			}
			result, err := zxingrs.CorrectCodewords(codewords, ec, &zxingrs.DecodeOptions{
				Field:        field,
				CharacterSet: a.cfg.CharacterSet,
			})
			if err != nil {
				if reedsolomon.KindOf(err) == reedsolomon.KindUncorrectable {
					log.Warn("Too many errors to correct, try recapturing", "field", field, "codewords", len(codewords), "ec", ec)
				} else {
					log.Error("Decode failed", "field", field, "codewords", len(codewords), "ec", ec, "err", err)
				}
				return err
			}
			log.Debug("Decoded block", "field", field, "codewords", len(codewords), "corrected", result.ErrorsCorrected)
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().IntVarP(&ec, "ec", "e", 0, "Number of error-correction codewords at the end of the block")
	cmd.MarkFlagRequired("ec")
	return cmd
}

func printResult(w io.Writer, result *zxingrs.Result) {
	positions := make([]int, len(result.Corrections))
	for i, c := range result.Corrections {
		positions[i] = c.Position
	}
	highlight := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "codewords: %s\n", internal.FormatCodewords(result.Codewords, func(s string) string {
		return highlight(s)
	}, positions...))
	fmt.Fprintf(w, "corrected: %d\n", result.ErrorsCorrected)
	for _, c := range result.Corrections {
		fmt.Fprintf(w, "  position %d: xor %02x\n", c.Position, c.Magnitude)
	}
	if result.Text != "" {
		fmt.Fprintf(w, "text (%s): %q\n", result.CharacterSet, result.Text)
	}
}

func (a *app) batchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <job.toml>",
		Short: "Correct every block listed in a TOML job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := config.LoadJob(args[0])
			if err != nil {
				return err
			}
			fieldCfg := a.cfg.Field
			if job.Field != "" && !cmd.Flags().Changed("field") {
				fieldCfg = config.FieldConfig{Name: job.Field}
			}
			field, err := fieldCfg.Build()
			if err != nil {
				return err
			}

			blocks := make([]batch.Block, len(job.Blocks))
			for i, jb := range job.Blocks {
				codewords, err := jb.Bytes()
				if err != nil {
					return err
				}
				blocks[i] = batch.Block{ID: jb.ID, Codewords: codewords, ECCodewords: jb.EC}
			}

			corrector := batch.NewCorrector(field, a.cfg.Workers, log.Root())
			outcomes, err := corrector.Run(context.Background(), blocks)
			if err != nil {
				return err
			}
			printOutcomes(cmd.OutOrStdout(), blocks, outcomes)
			if batch.Summarize(outcomes).Failed() {
				return errBlocksFailed
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", 0, "Number of blocks corrected concurrently (default: number of CPUs)")
	return cmd
}

func printOutcomes(w io.Writer, blocks []batch.Block, outcomes []batch.Outcome) {
	highlight := color.New(color.FgRed, color.Bold).SprintFunc()
	for i, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s: %s\n", o.ID, color.RedString("FAILED: %v", o.Err))
			continue
		}
		positions := make([]int, len(o.Corrections))
		for j, c := range o.Corrections {
			positions[j] = c.Position
		}
		fmt.Fprintf(w, "%s: %d corrected: %s\n", o.ID, o.ErrorsCorrected,
			internal.FormatCodewords(blocks[i].Codewords, func(s string) string { return highlight(s) }, positions...))
	}
	s := batch.Summarize(outcomes)
	fmt.Fprintf(w, "blocks: %d clean, %d corrected (%d symbols), %d uncorrectable, %d invalid\n",
		s.Clean, s.Corrected, s.Symbols, s.Uncorrectable, s.Invalid)
}

func (a *app) fieldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "field",
		Short: "Print the parameters of the configured Galois field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			field, err := a.cfg.Field.Build()
			if err != nil {
				return err
			}
			p := field.Params()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "field:          %s\n", field)
			fmt.Fprintf(w, "primitive:      0x%x\n", p.Primitive)
			fmt.Fprintf(w, "size:           %d\n", p.Size)
			fmt.Fprintf(w, "generator:      %d\n", p.Generator)
			fmt.Fprintf(w, "generator base: %d\n", p.GeneratorBase)
			fmt.Fprintf(w, "roots:          g^%d .. g^(%d+twoS-1)\n", p.GeneratorBase, p.GeneratorBase)
			return nil
		},
	}
}
