package reedsolomon

import "github.com/pkg/errors"

// Kind classifies a failure reported by this package.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput marks malformed call arguments.
	KindInvalidInput
	// KindFieldConstruction marks field parameters that do not describe GF(2^m).
	KindFieldConstruction
	// KindUncorrectable marks a codeword holding more errors than the code
	// can certify. Callers are expected to handle it, usually by re-reading.
	KindUncorrectable
	// KindArithmetic marks a broken internal invariant. It indicates a bug.
	KindArithmetic
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindFieldConstruction:
		return "field construction"
	case KindUncorrectable:
		return "uncorrectable"
	case KindArithmetic:
		return "arithmetic invariant"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidInput is returned for malformed arguments. The caller's buffer
	// is never modified when it is returned.
	ErrInvalidInput = errors.New("reedsolomon: invalid input")

	// ErrFieldConstruction is returned by NewField for unusable parameters.
	ErrFieldConstruction = errors.New("reedsolomon: invalid field parameters")

	// ErrUncorrectable indicates a Reed-Solomon decoding failure.
	ErrUncorrectable = errors.New("reedsolomon: decoding error")

	// ErrArithmetic indicates an internal arithmetic invariant was violated.
	ErrArithmetic = errors.New("reedsolomon: arithmetic invariant violated")

	// ErrDivisionByZero is returned when inverting zero or dividing by the
	// zero polynomial.
	ErrDivisionByZero = errors.WithMessage(ErrArithmetic, "division by zero")

	// ErrLogOfZero is returned by Log(0).
	ErrLogOfZero = errors.WithMessage(ErrArithmetic, "log(0)")
)

// KindOf reports which kind of failure err carries.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrFieldConstruction):
		return KindFieldConstruction
	case errors.Is(err, ErrUncorrectable):
		return KindUncorrectable
	case errors.Is(err, ErrArithmetic):
		return KindArithmetic
	default:
		return KindUnknown
	}
}
