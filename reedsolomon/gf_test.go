package reedsolomon

import (
	"testing"

	"github.com/pkg/errors"
)

func TestGaloisFieldBasics(t *testing.T) {
	field := QRCodeField256
	if field.Size() != 256 {
		t.Errorf("size = %d, want 256", field.Size())
	}
	if field.GeneratorBase() != 0 {
		t.Errorf("generatorBase = %d, want 0", field.GeneratorBase())
	}
	if field.Generator() != 2 {
		t.Errorf("generator = %d, want 2", field.Generator())
	}
	if field.Degree() != 8 {
		t.Errorf("degree = %d, want 8", field.Degree())
	}

	// a * inverse(a) should be 1
	for a := 1; a < 256; a++ {
		inv, err := field.Inverse(a)
		if err != nil {
			t.Fatalf("Inverse(%d): %v", a, err)
		}
		if product := field.Multiply(a, inv); product != 1 {
			t.Errorf("a=%d: a*inv(a) = %d, want 1", a, product)
		}
	}

	// a XOR a should be 0
	for a := 0; a < 256; a++ {
		if AddOrSubtract(a, a) != 0 {
			t.Errorf("%d + %d != 0", a, a)
		}
	}

	// multiply by 0
	if field.Multiply(0, 100) != 0 || field.Multiply(100, 0) != 0 {
		t.Error("multiply by 0 should be 0")
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	for _, field := range []*GenericGF{QRCodeField256, DataMatrixField256} {
		for x := 1; x < field.Size(); x++ {
			l, err := field.Log(x)
			if err != nil {
				t.Fatalf("%s: Log(%d): %v", field, x, err)
			}
			if got := field.Exp(l); got != x {
				t.Errorf("%s: Exp(Log(%d)) = %d", field, x, got)
			}
		}
	}
}

func TestExpWraps(t *testing.T) {
	field := QRCodeField256
	if field.Exp(0) != 1 {
		t.Errorf("Exp(0) = %d, want 1", field.Exp(0))
	}
	if field.Exp(1) != 2 {
		t.Errorf("Exp(1) = %d, want 2", field.Exp(1))
	}
	// x^8 = x^4 + x^3 + x^2 + 1 under 0x11D.
	if field.Exp(8) != 0x1D {
		t.Errorf("Exp(8) = 0x%x, want 0x1d", field.Exp(8))
	}
	if field.Exp(255) != 1 || field.Exp(255+7) != field.Exp(7) {
		t.Error("Exp should wrap modulo 255")
	}
	if field.Exp(-1) != field.Exp(254) {
		t.Errorf("Exp(-1) = %d, want %d", field.Exp(-1), field.Exp(254))
	}
}

func TestLogAndInverseOfZero(t *testing.T) {
	field := QRCodeField256
	if _, err := field.Log(0); !errors.Is(err, ErrArithmetic) || !errors.Is(err, ErrLogOfZero) {
		t.Errorf("Log(0) error = %v, want ErrLogOfZero", err)
	}
	if _, err := field.Inverse(0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Inverse(0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := field.Divide(7, 0); KindOf(err) != KindArithmetic {
		t.Errorf("Divide(7, 0) kind = %v, want arithmetic", KindOf(err))
	}
	if _, err := field.Log(256); KindOf(err) != KindInvalidInput {
		t.Errorf("Log(256) kind = %v, want invalid input", KindOf(err))
	}
}

func TestDivide(t *testing.T) {
	field := DataMatrixField256
	for a := 0; a < 256; a += 17 {
		for b := 1; b < 256; b += 13 {
			q, err := field.Divide(a, b)
			if err != nil {
				t.Fatalf("Divide(%d, %d): %v", a, b, err)
			}
			if field.Multiply(q, b) != a {
				t.Errorf("(%d / %d) * %d != %d", a, b, b, a)
			}
		}
	}
}

func TestNewFieldRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		params FieldParams
	}{
		{"size not power of two", FieldParams{Primitive: 0x11D, Size: 255}},
		{"size too small", FieldParams{Primitive: 0x3, Size: 2}},
		{"primitive wrong degree", FieldParams{Primitive: 0x1D, Size: 256}},
		{"reducible modulus", FieldParams{Primitive: 0x100, Size: 256}},
		// x^8+x^4+x^3+x+1 is irreducible but 2 only has order 51 under it.
		{"generator not primitive", FieldParams{Primitive: 0x11B, Size: 256, Generator: 2}},
		{"generator out of range", FieldParams{Primitive: 0x11D, Size: 256, Generator: 256}},
		{"base out of range", FieldParams{Primitive: 0x11D, Size: 256, GeneratorBase: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.params)
			if !errors.Is(err, ErrFieldConstruction) {
				t.Errorf("NewField(%+v) error = %v, want ErrFieldConstruction", tt.params, err)
			}
			if KindOf(err) != KindFieldConstruction {
				t.Errorf("kind = %v", KindOf(err))
			}
		})
	}
}

func TestNewFieldAlternateGenerator(t *testing.T) {
	// 3 generates the whole multiplicative group of the AES field 0x11B.
	field, err := NewField(FieldParams{Primitive: 0x11B, Size: 256, Generator: 3})
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if field.Exp(1) != 3 {
		t.Errorf("Exp(1) = %d, want 3", field.Exp(1))
	}
	// 0x53 * 0xCA = 1 in the AES field.
	if got := field.Multiply(0x53, 0xCA); got != 1 {
		t.Errorf("0x53 * 0xCA = 0x%x, want 1", got)
	}
}

func TestSmallField(t *testing.T) {
	field, err := NewGenericGF(0x13, 16, 1) // x^4 + x + 1
	if err != nil {
		t.Fatalf("NewGenericGF: %v", err)
	}
	for a := 1; a < 16; a++ {
		inv, _ := field.Inverse(a)
		if field.Multiply(a, inv) != 1 {
			t.Errorf("a=%d: a*inv(a) != 1", a)
		}
	}
}

func TestFieldByName(t *testing.T) {
	if f, err := FieldByName("QRCode"); err != nil || f != QRCodeField256 {
		t.Errorf("FieldByName(QRCode) = %v, %v", f, err)
	}
	if f, err := FieldByName("datamatrix"); err != nil || f != DataMatrixField256 {
		t.Errorf("FieldByName(datamatrix) = %v, %v", f, err)
	}
	if _, err := FieldByName("aztec"); KindOf(err) != KindInvalidInput {
		t.Errorf("FieldByName(aztec) error = %v", err)
	}
}

func TestMustNewGenericGFPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNewGenericGF(0x11B, 256, 0)
}
