package reedsolomon

import "github.com/pkg/errors"

// Correction records one repaired symbol: the magnitude XORed into the
// received buffer at Position.
type Correction struct {
	Position  int
	Magnitude int
}

// Decoder performs Reed-Solomon error correction decoding. It keeps no state
// between calls; one Decoder may serve many goroutines as long as each call
// gets its own buffer.
type Decoder struct {
	field *GenericGF
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *GenericGF) *Decoder {
	return &Decoder{field: field}
}

// Field returns the field the decoder works in.
func (d *Decoder) Field() *GenericGF { return d.field }

// Decode corrects errors in received in-place and returns the number of
// errors corrected. twoS is the number of error-correction codewords.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	corrections, err := d.Correct(received, twoS)
	return len(corrections), err
}

// DecodeBytes is Decode for byte-valued codewords in a field of size 256.
func (d *Decoder) DecodeBytes(received []byte, twoS int) ([]Correction, error) {
	if d.field.Size() != 256 {
		return nil, errors.Wrapf(ErrInvalidInput, "byte codewords need a field of size 256, have %s", d.field)
	}
	codewords := make([]int, len(received))
	for i, b := range received {
		codewords[i] = int(b)
	}
	corrections, err := d.Correct(codewords, twoS)
	if err != nil {
		return nil, err
	}
	for _, c := range corrections {
		received[c.Position] = byte(codewords[c.Position])
	}
	return corrections, nil
}

// Correct corrects errors in received in-place and returns the corrected
// positions paired with the magnitude applied to each. received is left
// untouched whenever an error is returned.
func (d *Decoder) Correct(received []int, twoS int) ([]Correction, error) {
	if err := d.checkInput(received, twoS); err != nil {
		return nil, err
	}

	poly := newGenericGFPoly(d.field, append([]int(nil), received...))
	syndromeCoefficients, noError := d.syndromes(poly, twoS)
	if noError {
		return nil, nil
	}

	syndrome := newGenericGFPoly(d.field, syndromeCoefficients)
	sigma, omega, err := d.runEuclideanAlgorithm(d.field.BuildMonomial(twoS, 1), syndrome, twoS/2)
	if err != nil {
		return nil, err
	}
	corrections, err := d.findErrors(sigma, omega, len(received))
	if err != nil {
		return nil, err
	}

	corrected := append([]int(nil), received...)
	for _, c := range corrections {
		corrected[c.Position] = AddOrSubtract(corrected[c.Position], c.Magnitude)
	}
	// A locator with the right number of roots can still describe a word
	// that is not a codeword once the roots fall outside a shortened code.
	if _, clean := d.syndromes(newGenericGFPoly(d.field, append([]int(nil), corrected...)), twoS); !clean {
		return nil, errors.Wrap(ErrUncorrectable, "corrected word still has nonzero syndromes")
	}
	copy(received, corrected)
	return corrections, nil
}

func (d *Decoder) checkInput(received []int, twoS int) error {
	n := len(received)
	switch {
	case n == 0:
		return errors.Wrap(ErrInvalidInput, "empty codeword")
	case n > d.field.Size()-1:
		return errors.Wrapf(ErrInvalidInput, "codeword length %d exceeds %d for %s", n, d.field.Size()-1, d.field)
	case twoS <= 0 || twoS%2 != 0:
		return errors.Wrapf(ErrInvalidInput, "correction symbol count %d must be positive and even", twoS)
	case twoS >= n:
		return errors.Wrapf(ErrInvalidInput, "correction symbol count %d leaves no data in %d codewords", twoS, n)
	}
	for i, c := range received {
		if !d.field.Contains(c) {
			return errors.Wrapf(ErrInvalidInput, "codeword %d = %d outside %s", i, c, d.field)
		}
	}
	return nil
}

// syndromes evaluates poly at the twoS consecutive roots of the code. The
// result is ordered as polynomial coefficients, S_0 last.
func (d *Decoder) syndromes(poly *GenericGFPoly, twoS int) ([]int, bool) {
	syndromeCoefficients := make([]int, twoS)
	noError := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.GeneratorBase()))
		syndromeCoefficients[twoS-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	return syndromeCoefficients, noError
}

// runEuclideanAlgorithm computes the error locator sigma and evaluator omega
// from the syndrome polynomial b and a = x^twoS, stopping once the remainder
// degree drops below R. sigma is normalized so that sigma(0) == 1.
func (d *Decoder) runEuclideanAlgorithm(a, b *GenericGFPoly, R int) (sigma, omega *GenericGFPoly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast := a
	r := b
	tLast := d.field.Zero()
	t := d.field.One()

	for r.Degree() >= R {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		q, rem, err := rLastLast.Divide(rLast)
		// Only reachable with R == 0; Correct always passes R >= 1.
		if errors.Is(err, ErrDivisionByZero) {
			return nil, nil, errors.Wrap(ErrUncorrectable, "euclidean algorithm reached a zero remainder")
		}
		if err != nil {
			return nil, nil, err
		}
		r = rem
		t = q.MultiplyPoly(tLast).AddOrSubtractPoly(tLastLast)

		if r.Degree() >= rLast.Degree() && !r.IsZero() {
			return nil, nil, errors.Wrapf(ErrArithmetic, "division failed to reduce degree %d", rLast.Degree())
		}
	}

	sigmaTildeAtZero := t.GetCoefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, errors.Wrap(ErrUncorrectable, "sigma tilde(0) was zero")
	}

	inverse, err := d.field.Inverse(sigmaTildeAtZero)
	if err != nil {
		return nil, nil, err
	}
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrors searches every nonzero field element for roots of the error
// locator and computes the magnitude of each error as it is found, using
// Forney's formula e = X^(1-b) * omega(X^-1) / sigma'(X^-1).
func (d *Decoder) findErrors(sigma, omega *GenericGFPoly, n int) ([]Correction, error) {
	numErrors := sigma.Degree()
	if numErrors == 0 {
		return nil, errors.Wrap(ErrUncorrectable, "error locator has no roots")
	}
	sigmaPrime := sigma.formalDerivative()
	order := d.field.Size() - 1

	result := make([]Correction, 0, numErrors)
	for i := 0; i < order && len(result) < numErrors; i++ {
		xiInverse := d.field.Exp(i)
		if sigma.EvaluateAt(xiInverse) != 0 {
			continue
		}
		// The root is X^-1 = g^i, so the locator X = g^-i.
		logLocation := (order - i) % order
		position := n - 1 - logLocation
		if position < 0 {
			return nil, errors.Wrapf(ErrUncorrectable, "error location %d lies before the codeword start", position)
		}
		if position >= n {
			return nil, errors.Wrapf(ErrArithmetic, "error location %d beyond codeword length %d", position, n)
		}

		denominator := sigmaPrime.EvaluateAt(xiInverse)
		if denominator == 0 {
			return nil, errors.Wrap(ErrUncorrectable, "repeated root in error locator")
		}
		magnitude, err := d.field.Divide(omega.EvaluateAt(xiInverse), denominator)
		if err != nil {
			return nil, err
		}
		magnitude = d.field.Multiply(magnitude, d.field.Exp(logLocation*(1-d.field.GeneratorBase())))
		if magnitude == 0 {
			return nil, errors.Wrapf(ErrUncorrectable, "zero magnitude at position %d", position)
		}
		result = append(result, Correction{Position: position, Magnitude: magnitude})
	}
	if len(result) != numErrors {
		return nil, errors.Wrapf(ErrUncorrectable, "error locator degree %d, found %d roots", numErrors, len(result))
	}
	return result, nil
}
