package reedsolomon

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GenericGFPoly represents a polynomial whose coefficients are elements of a GF.
// Instances are immutable; every operation returns a new polynomial.
type GenericGFPoly struct {
	field        *GenericGF
	coefficients []int
}

// NewGenericGFPoly creates a polynomial from coefficients ordered from
// highest-degree to lowest-degree. Leading zeros are dropped and the input
// slice is not retained.
func NewGenericGFPoly(field *GenericGF, coefficients []int) (*GenericGFPoly, error) {
	if len(coefficients) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty coefficients")
	}
	for i, c := range coefficients {
		if !field.Contains(c) {
			return nil, errors.Wrapf(ErrInvalidInput, "coefficient %d = %d outside %s", i, c, field)
		}
	}
	owned := make([]int, len(coefficients))
	copy(owned, coefficients)
	return newGenericGFPoly(field, owned), nil
}

// newGenericGFPoly trims leading zeros and takes ownership of coefficients,
// which must already be field elements.
func newGenericGFPoly(field *GenericGF, coefficients []int) *GenericGFPoly {
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			return field.zero
		}
		coefficients = coefficients[firstNonZero:]
	}
	return &GenericGFPoly{field: field, coefficients: coefficients}
}

// Field returns the field the coefficients belong to.
func (p *GenericGFPoly) Field() *GenericGF { return p.field }

// Coefficients returns a copy of the coefficients, highest degree first.
func (p *GenericGFPoly) Coefficients() []int {
	out := make([]int, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// Degree returns the degree of this polynomial.
func (p *GenericGFPoly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero returns true if this is the zero polynomial.
func (p *GenericGFPoly) IsZero() bool {
	return p.coefficients[0] == 0
}

// GetCoefficient returns the coefficient of x^degree.
func (p *GenericGFPoly) GetCoefficient(degree int) int {
	if degree < 0 || degree >= len(p.coefficients) {
		return 0
	}
	return p.coefficients[len(p.coefficients)-1-degree]
}

// Equal reports whether p and other have the same coefficients.
func (p *GenericGFPoly) Equal(other *GenericGFPoly) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i, c := range p.coefficients {
		if other.coefficients[i] != c {
			return false
		}
	}
	return true
}

// EvaluateAt evaluates this polynomial at a.
func (p *GenericGFPoly) EvaluateAt(a int) int {
	if a == 0 {
		return p.GetCoefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = AddOrSubtract(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for i := 1; i < len(p.coefficients); i++ {
		result = AddOrSubtract(p.field.Multiply(a, result), p.coefficients[i])
	}
	return result
}

// AddOrSubtractPoly adds (or subtracts) another polynomial.
func (p *GenericGFPoly) AddOrSubtractPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smallerCoeff := p.coefficients
	largerCoeff := other.coefficients
	if len(smallerCoeff) > len(largerCoeff) {
		smallerCoeff, largerCoeff = largerCoeff, smallerCoeff
	}

	sumDiff := make([]int, len(largerCoeff))
	lengthDiff := len(largerCoeff) - len(smallerCoeff)
	copy(sumDiff, largerCoeff[:lengthDiff])

	for i := lengthDiff; i < len(largerCoeff); i++ {
		sumDiff[i] = AddOrSubtract(smallerCoeff[i-lengthDiff], largerCoeff[i])
	}

	return newGenericGFPoly(p.field, sumDiff)
}

// MultiplyPoly multiplies by another polynomial.
func (p *GenericGFPoly) MultiplyPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	aCoeff := p.coefficients
	bCoeff := other.coefficients
	product := make([]int, len(aCoeff)+len(bCoeff)-1)
	for i, ac := range aCoeff {
		for j, bc := range bCoeff {
			product[i+j] = AddOrSubtract(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyScalar multiplies by a scalar.
func (p *GenericGFPoly) MultiplyScalar(scalar int) *GenericGFPoly {
	if scalar == 0 {
		return p.field.Zero()
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyByMonomial multiplies by coefficient * x^degree.
func (p *GenericGFPoly) MultiplyByMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 || p.IsZero() {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newGenericGFPoly(p.field, product)
}

// Divide divides by another polynomial, returning the quotient and remainder.
// It fails with ErrDivisionByZero when other is the zero polynomial.
func (p *GenericGFPoly) Divide(other *GenericGFPoly) (quotient, remainder *GenericGFPoly, err error) {
	if other.IsZero() {
		return nil, nil, ErrDivisionByZero
	}

	quotient = p.field.Zero()
	remainder = p

	denominatorLeadingTerm := other.GetCoefficient(other.Degree())
	inverseDLT, err := p.field.Inverse(denominatorLeadingTerm)
	if err != nil {
		return nil, nil, err
	}

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.GetCoefficient(remainder.Degree()), inverseDLT)
		term := other.MultiplyByMonomial(degreeDiff, scale)
		iterQuot := p.field.BuildMonomial(degreeDiff, scale)
		quotient = quotient.AddOrSubtractPoly(iterQuot)
		remainder = remainder.AddOrSubtractPoly(term)
	}

	return quotient, remainder, nil
}

// formalDerivative returns d/dx of p. In characteristic 2 only the odd-power
// terms survive, each dropping one degree.
func (p *GenericGFPoly) formalDerivative() *GenericGFPoly {
	degree := p.Degree()
	if degree == 0 {
		return p.field.Zero()
	}
	derivative := make([]int, degree)
	for d := 1; d <= degree; d += 2 {
		derivative[degree-d] = p.GetCoefficient(d)
	}
	return newGenericGFPoly(p.field, derivative)
}

// String renders the polynomial as "ax^n + ... + c" with decimal coefficients.
func (p *GenericGFPoly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for degree := p.Degree(); degree >= 0; degree-- {
		c := p.GetCoefficient(degree)
		if c == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		if c != 1 || degree == 0 {
			sb.WriteString(strconv.Itoa(c))
		}
		switch {
		case degree == 1:
			sb.WriteString("x")
		case degree > 1:
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(degree))
		}
	}
	return sb.String()
}
