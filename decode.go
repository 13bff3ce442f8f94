// Package zxingrs corrects the codewords read from a 2-D barcode symbol
// before they are handed to message reconstruction.
package zxingrs

import (
	"fmt"

	"github.com/ericlevine/zxingrs/charset"
	"github.com/ericlevine/zxingrs/reedsolomon"
)

// DecodeOptions configures codeword correction.
type DecodeOptions struct {
	// Field is the Galois field of the symbology. Defaults to
	// reedsolomon.QRCodeField256.
	Field *reedsolomon.GenericGF

	// CharacterSet specifies the character set used to render the data
	// codewords as text. When empty the character set is guessed.
	CharacterSet string

	// SkipText disables text rendering.
	SkipText bool
}

func (o *DecodeOptions) field() *reedsolomon.GenericGF {
	if o == nil || o.Field == nil {
		return reedsolomon.QRCodeField256
	}
	return o.Field
}

// CorrectCodewords repairs codewords in place. The last numECCodewords
// entries are error-correction codewords. On failure codewords is left as it
// was and the error matches ErrChecksum or ErrFormat as well as the
// corresponding reedsolomon sentinel.
func CorrectCodewords(codewords []byte, numECCodewords int, opts *DecodeOptions) (*Result, error) {
	name := ""
	if opts != nil && !opts.SkipText && opts.CharacterSet != "" {
		if _, err := charset.Lookup(opts.CharacterSet); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		name = opts.CharacterSet
	}

	work := append([]byte(nil), codewords...)
	dec := reedsolomon.NewDecoder(opts.field())
	corrections, err := dec.DecodeBytes(work, numECCodewords)
	if err != nil {
		switch reedsolomon.KindOf(err) {
		case reedsolomon.KindUncorrectable:
			return nil, fmt.Errorf("%w: %w", ErrChecksum, err)
		case reedsolomon.KindInvalidInput:
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		default:
			return nil, err
		}
	}

	text := ""
	if opts == nil || !opts.SkipText {
		if name == "" {
			name = charset.Guess(work[:len(work)-numECCodewords])
		}
		text, err = charset.DecodeBytes(work[:len(work)-numECCodewords], name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	}

	// Nothing below can fail, so the caller's buffer is only written once
	// the whole block has been accepted.
	copy(codewords, work)
	result := NewResult(codewords, len(codewords)-numECCodewords, corrections)
	result.Text = text
	result.CharacterSet = name
	return result, nil
}
