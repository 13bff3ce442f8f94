// Package reedsolomon implements Reed-Solomon error correction decoding for
// codewords read from 2-D barcodes.
package reedsolomon

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// FieldParams describes a Galois field GF(Size).
type FieldParams struct {
	// Primitive is the modulus polynomial, including its x^m term.
	Primitive int
	// Size is the number of field elements, a power of two.
	Size int
	// Generator is the primitive element whose powers fill the field.
	// Zero means 2.
	Generator int
	// GeneratorBase is the power of Generator at which the code's
	// consecutive roots start.
	GeneratorBase int
}

// GenericGF represents a Galois Field for Reed-Solomon coding. Its tables are
// never written after construction, so a GenericGF may be shared freely
// between goroutines.
type GenericGF struct {
	expTable      []int
	logTable      []int
	zero          *GenericGFPoly
	one           *GenericGFPoly
	size          int
	primitive     int
	generator     int
	generatorBase int
}

// Pre-defined Galois Fields.
var (
	QRCodeField256     = MustNewGenericGF(0x011D, 256, 0) // x^8 + x^4 + x^3 + x^2 + 1
	DataMatrixField256 = MustNewGenericGF(0x012D, 256, 1) // x^8 + x^5 + x^3 + x^2 + 1
)

// FieldByName returns a pre-defined field by its short name.
func FieldByName(name string) (*GenericGF, error) {
	switch strings.ToLower(name) {
	case "qrcode", "qr", "qr_code":
		return QRCodeField256, nil
	case "datamatrix", "data_matrix":
		return DataMatrixField256, nil
	}
	return nil, errors.Wrapf(ErrInvalidInput, "unknown field %q", name)
}

// NewGenericGF creates a GF(size) generated by 2 under the given primitive
// polynomial.
func NewGenericGF(primitive, size, generatorBase int) (*GenericGF, error) {
	return NewField(FieldParams{Primitive: primitive, Size: size, Generator: 2, GeneratorBase: generatorBase})
}

// MustNewGenericGF is like NewGenericGF but panics on invalid parameters.
func MustNewGenericGF(primitive, size, generatorBase int) *GenericGF {
	gf, err := NewGenericGF(primitive, size, generatorBase)
	if err != nil {
		panic(err)
	}
	return gf
}

// NewField builds the exponent and log tables for p. It fails with
// ErrFieldConstruction unless the generator reaches every nonzero element.
func NewField(p FieldParams) (*GenericGF, error) {
	if p.Generator == 0 {
		p.Generator = 2
	}
	size := p.Size
	if size < 4 || size > 1<<16 || size&(size-1) != 0 {
		return nil, errors.Wrapf(ErrFieldConstruction, "size %d is not a power of two in [4, 65536]", size)
	}
	if p.Primitive < size || p.Primitive >= 2*size {
		return nil, errors.Wrapf(ErrFieldConstruction, "primitive 0x%x has wrong degree for size %d", p.Primitive, size)
	}
	if p.Generator < 2 || p.Generator >= size {
		return nil, errors.Wrapf(ErrFieldConstruction, "generator %d outside [2, %d)", p.Generator, size)
	}
	if p.GeneratorBase < 0 || p.GeneratorBase >= size-1 {
		return nil, errors.Wrapf(ErrFieldConstruction, "generator base %d outside [0, %d)", p.GeneratorBase, size-1)
	}

	gf := &GenericGF{
		primitive:     p.Primitive,
		size:          size,
		generator:     p.Generator,
		generatorBase: p.GeneratorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	seen := make([]bool, size)
	x := 1
	for i := 0; i < size-1; i++ {
		if x == 0 || seen[x] {
			return nil, errors.Wrapf(ErrFieldConstruction,
				"generator %d has order %d under 0x%x, want %d", p.Generator, i, p.Primitive, size-1)
		}
		seen[x] = true
		gf.expTable[i] = x
		gf.logTable[x] = i
		x = multiplySlow(x, p.Generator, p.Primitive, size)
	}
	if x != 1 {
		return nil, errors.Wrapf(ErrFieldConstruction, "0x%x is not irreducible", p.Primitive)
	}
	gf.expTable[size-1] = 1

	gf.zero = &GenericGFPoly{field: gf, coefficients: []int{0}}
	gf.one = &GenericGFPoly{field: gf, coefficients: []int{1}}

	return gf, nil
}

// multiplySlow is carry-less multiplication reduced by primitive, used only
// while the tables are being built.
func multiplySlow(a, b, primitive, size int) int {
	result := 0
	for b > 0 {
		if b&1 != 0 {
			result ^= a
		}
		b >>= 1
		a <<= 1
		if a&size != 0 {
			a ^= primitive
		}
	}
	return result
}

// Zero returns the zero polynomial.
func (gf *GenericGF) Zero() *GenericGFPoly { return gf.zero }

// One returns the one polynomial.
func (gf *GenericGF) One() *GenericGFPoly { return gf.one }

// BuildMonomial returns coefficient * x^degree.
func (gf *GenericGF) BuildMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return gf.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newGenericGFPoly(gf, coefficients)
}

// AddOrSubtract computes a XOR b (addition and subtraction are the same in GF(2^n)).
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns generator^a in this field. a may be any integer; powers wrap
// modulo Size()-1.
func (gf *GenericGF) Exp(a int) int {
	a %= gf.size - 1
	if a < 0 {
		a += gf.size - 1
	}
	return gf.expTable[a]
}

// Log returns the discrete logarithm of a.
func (gf *GenericGF) Log(a int) (int, error) {
	if a == 0 {
		return 0, ErrLogOfZero
	}
	if !gf.Contains(a) {
		return 0, errors.Wrapf(ErrInvalidInput, "log(%d) outside %s", a, gf)
	}
	return gf.logTable[a], nil
}

// Inverse returns the multiplicative inverse of a.
func (gf *GenericGF) Inverse(a int) (int, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	if !gf.Contains(a) {
		return 0, errors.Wrapf(ErrInvalidInput, "inverse(%d) outside %s", a, gf)
	}
	return gf.expTable[gf.size-gf.logTable[a]-1], nil
}

// Multiply returns a * b in this field.
func (gf *GenericGF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf.expTable[(gf.logTable[a]+gf.logTable[b])%(gf.size-1)]
}

// Divide returns a / b in this field.
func (gf *GenericGF) Divide(a, b int) (int, error) {
	inv, err := gf.Inverse(b)
	if err != nil {
		return 0, err
	}
	return gf.Multiply(a, inv), nil
}

// Contains reports whether a is an element of this field.
func (gf *GenericGF) Contains(a int) bool {
	return a >= 0 && a < gf.size
}

// Size returns the size of the field.
func (gf *GenericGF) Size() int { return gf.size }

// Degree returns m for GF(2^m).
func (gf *GenericGF) Degree() int { return bits.TrailingZeros(uint(gf.size)) }

// Primitive returns the modulus polynomial.
func (gf *GenericGF) Primitive() int { return gf.primitive }

// Generator returns the primitive element the tables were built from.
func (gf *GenericGF) Generator() int { return gf.generator }

// GeneratorBase returns the generator base.
func (gf *GenericGF) GeneratorBase() int { return gf.generatorBase }

// Params returns the parameters the field was built from.
func (gf *GenericGF) Params() FieldParams {
	return FieldParams{
		Primitive:     gf.primitive,
		Size:          gf.size,
		Generator:     gf.generator,
		GeneratorBase: gf.generatorBase,
	}
}

// String returns a string representation.
func (gf *GenericGF) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", gf.primitive, gf.size)
}
