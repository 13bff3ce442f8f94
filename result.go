package zxingrs

import "github.com/ericlevine/zxingrs/reedsolomon"

// Result encapsulates the outcome of correcting one block of codewords.
type Result struct {
	// Codewords is the corrected block, data followed by error correction.
	Codewords []byte
	// DataCodewords aliases the data portion of Codewords.
	DataCodewords   []byte
	ErrorsCorrected int
	Corrections     []reedsolomon.Correction
	Text            string
	CharacterSet    string
}

// NewResult creates a Result for a corrected block.
func NewResult(codewords []byte, numDataCodewords int, corrections []reedsolomon.Correction) *Result {
	return &Result{
		Codewords:       codewords,
		DataCodewords:   codewords[:numDataCodewords],
		ErrorsCorrected: len(corrections),
		Corrections:     corrections,
	}
}

// Corrected reports whether position was repaired.
func (r *Result) Corrected(position int) bool {
	for _, c := range r.Corrections {
		if c.Position == position {
			return true
		}
	}
	return false
}
