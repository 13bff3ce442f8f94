// Package rstest builds valid and deliberately damaged Reed-Solomon codewords
// for tests. Encoding is not part of the public API.
package rstest

import (
	"math/rand"

	"github.com/ericlevine/zxingrs/reedsolomon"
)

// Encoder computes systematic Reed-Solomon check symbols.
type Encoder struct {
	field            *reedsolomon.GenericGF
	cachedGenerators []*reedsolomon.GenericGFPoly
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *reedsolomon.GenericGF) *Encoder {
	return &Encoder{
		field:            field,
		cachedGenerators: []*reedsolomon.GenericGFPoly{field.One()},
	}
}

// generator returns (x - g^b)(x - g^(b+1))...(x - g^(b+degree-1)).
func (e *Encoder) generator(degree int) *reedsolomon.GenericGFPoly {
	for d := len(e.cachedGenerators); d <= degree; d++ {
		factor := e.field.BuildMonomial(1, 1).AddOrSubtractPoly(
			e.field.BuildMonomial(0, e.field.Exp(d-1+e.field.GeneratorBase())))
		e.cachedGenerators = append(e.cachedGenerators, e.cachedGenerators[d-1].MultiplyPoly(factor))
	}
	return e.cachedGenerators[degree]
}

// Encode fills the last ecSymbols entries of codeword with check symbols
// computed over the data symbols in front of them.
func (e *Encoder) Encode(codeword []int, ecSymbols int) {
	if ecSymbols <= 0 {
		panic("rstest: no error correction symbols")
	}
	dataSymbols := len(codeword) - ecSymbols
	if dataSymbols <= 0 {
		panic("rstest: no data symbols provided")
	}
	info, err := reedsolomon.NewGenericGFPoly(e.field, codeword[:dataSymbols])
	if err != nil {
		panic(err)
	}
	_, remainder, err := info.MultiplyByMonomial(ecSymbols, 1).Divide(e.generator(ecSymbols))
	if err != nil {
		panic(err)
	}
	for i := dataSymbols; i < len(codeword); i++ {
		codeword[i] = 0
	}
	if remainder.IsZero() {
		return
	}
	coefficients := remainder.Coefficients()
	copy(codeword[len(codeword)-len(coefficients):], coefficients)
}

// Codeword returns a valid codeword of length n with ecSymbols check symbols
// and random data.
func (e *Encoder) Codeword(rng *rand.Rand, n, ecSymbols int) []int {
	codeword := make([]int, n)
	for i := 0; i < n-ecSymbols; i++ {
		codeword[i] = rng.Intn(e.field.Size())
	}
	e.Encode(codeword, ecSymbols)
	return codeword
}

// Corrupt XORs a random nonzero value into k distinct positions of codeword
// and returns the positions touched.
func Corrupt(rng *rand.Rand, field *reedsolomon.GenericGF, codeword []int, k int) []int {
	positions := rng.Perm(len(codeword))[:k]
	for _, p := range positions {
		codeword[p] ^= 1 + rng.Intn(field.Size()-1)
	}
	return positions
}

// Bytes converts int codewords to bytes.
func Bytes(codeword []int) []byte {
	out := make([]byte, len(codeword))
	for i, c := range codeword {
		out[i] = byte(c)
	}
	return out
}
