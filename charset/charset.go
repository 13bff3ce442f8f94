// Package charset renders corrected data codewords as text.
package charset

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset indicates a character set name with no known encoding.
var ErrUnknownCharset = errors.New("charset: unknown character set")

// zxingNames maps the character set names used by barcode readers to the
// IANA names understood by ianaindex.
var zxingNames = map[string]string{
	"cp437":              "IBM437",
	"iso8859_1":          "ISO-8859-1",
	"iso8859_2":          "ISO-8859-2",
	"iso8859_5":          "ISO-8859-5",
	"iso8859_15":         "ISO-8859-15",
	"sjis":               "Shift_JIS",
	"cp1250":             "windows-1250",
	"cp1251":             "windows-1251",
	"cp1252":             "windows-1252",
	"cp1256":             "windows-1256",
	"unicodebigunmarked": "UTF-16BE",
	"utf8":               "UTF-8",
	"ascii":              "US-ASCII",
	"gb18030":            "GB18030",
	"gbk":                "GBK",
	"euc_cn":             "GB2312",
	"euc_kr":             "EUC-KR",
}

// Lookup resolves a character set name to an encoding. Both IANA names and
// reader names such as "SJIS" or "ISO8859_1" are accepted.
func Lookup(name string) (encoding.Encoding, error) {
	if iana, ok := zxingNames[strings.ToLower(name)]; ok {
		name = iana
	}
	if strings.EqualFold(name, "UTF-8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownCharset, "%q", name)
	}
	if enc == nil {
		return nil, errors.Wrapf(ErrUnknownCharset, "%q has no decoder", name)
	}
	return enc, nil
}

// DecodeBytes converts data in the named character set to UTF-8.
func DecodeBytes(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", errors.Wrapf(err, "charset: decode %s", name)
	}
	return string(decoded), nil
}
