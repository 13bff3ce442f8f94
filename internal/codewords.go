// Package internal provides codeword helpers shared by the command line tool
// and job files.
package internal

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ParseCodewords reads codewords written in hex. Whitespace, commas, colons
// and "0x" prefixes between bytes are ignored, so "10 20 0c", "0x10,0x20,0x0c"
// and "10200c" are equivalent.
func ParseCodewords(s string) ([]byte, error) {
	var sb strings.Builder
	for _, field := range strings.FieldsFunc(s, isSeparator) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		if len(field)%2 != 0 {
			field = "0" + field
		}
		sb.WriteString(field)
	}
	if sb.Len() == 0 {
		return nil, errors.New("no codewords")
	}
	out, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, errors.Wrapf(err, "parse codewords %q", s)
	}
	return out, nil
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',' || r == ':'
}

// FormatCodewords renders codewords as space-separated hex. When highlight is
// non-nil it wraps the bytes at the given positions.
func FormatCodewords(codewords []byte, highlight func(string) string, positions ...int) string {
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	parts := make([]string, len(codewords))
	for i, b := range codewords {
		parts[i] = hex.EncodeToString([]byte{b})
		if highlight != nil && marked[i] {
			parts[i] = highlight(parts[i])
		}
	}
	return strings.Join(parts, " ")
}
