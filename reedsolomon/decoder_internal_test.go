package reedsolomon

import "testing"

func TestEuclideanAlgorithmZeroRemainder(t *testing.T) {
	d := NewDecoder(QRCodeField256)
	a := QRCodeField256.BuildMonomial(4, 1)

	_, _, err := d.runEuclideanAlgorithm(a, QRCodeField256.Zero(), 0)
	if KindOf(err) != KindUncorrectable {
		t.Fatalf("error = %v (%s), want %s", err, KindOf(err), KindUncorrectable)
	}
}

func TestEuclideanAlgorithmSingleError(t *testing.T) {
	field := QRCodeField256
	d := NewDecoder(field)
	// One error of magnitude 7 at the last position: every syndrome is 7.
	syndrome := mustPoly(t, field, 7, 7, 7, 7)

	sigma, omega, err := d.runEuclideanAlgorithm(field.BuildMonomial(4, 1), syndrome, 2)
	if err != nil {
		t.Fatalf("runEuclideanAlgorithm: %v", err)
	}
	if sigma.GetCoefficient(0) != 1 {
		t.Errorf("sigma(0) = %d, want 1", sigma.GetCoefficient(0))
	}
	corrections, err := d.findErrors(sigma, omega, 10)
	if err != nil {
		t.Fatalf("findErrors: %v", err)
	}
	if len(corrections) != 1 || corrections[0] != (Correction{Position: 9, Magnitude: 7}) {
		t.Errorf("corrections = %v, want [{9 7}]", corrections)
	}
}
