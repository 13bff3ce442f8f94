package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	zxingrs "github.com/ericlevine/zxingrs"
)

// 1-M codeword for "01234567" with codewords 0, 5 and 20 damaged.
const damagedISOExample = "00 20 0c 56 61 81 ec 11 ec 11 ec 11 ec 11 ec 11 a5 24 d4 c1 00 36 c7 87 2c 55"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color=false", "--verbosity=0"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "--ec", "10", damagedISOExample)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "codewords: 10 20 0c 56 61 80 ec 11") {
		t.Errorf("output does not show the repaired block:\n%s", out)
	}
	if !strings.Contains(out, "corrected: 3") {
		t.Errorf("output does not report 3 corrections:\n%s", out)
	}
}

func TestDecodeCommandUncorrectable(t *testing.T) {
	// Six damaged codewords, one more than ten error-correction codewords repair.
	const tooDamaged = "10 21 0d 57 60 80 ed 11 ed 11 ec 11 ec 11 ec 11 a5 24 d4 c1 ed 36 c7 87 2c 55"
	_, err := run(t, "decode", "--ec", "10", tooDamaged)
	if !errors.Is(err, zxingrs.ErrChecksum) {
		t.Errorf("err = %v, want ErrChecksum", err)
	}
}

func TestDecodeCommandRejectsOddEC(t *testing.T) {
	_, err := run(t, "decode", "--ec", "3", damagedISOExample)
	if !errors.Is(err, zxingrs.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func TestBatchCommand(t *testing.T) {
	job := filepath.Join(t.TempDir(), "job.toml")
	content := `field = "qrcode"

[[block]]
id = "iso"
codewords = "` + damagedISOExample + `"
ec = 10

[[block]]
id = "short"
codewords = "01 02"
ec = 2
`
	if err := os.WriteFile(job, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "batch", "--workers", "2", job)
	if !errors.Is(err, errBlocksFailed) {
		t.Errorf("err = %v, want errBlocksFailed", err)
	}
	if !strings.Contains(out, "iso: 3 corrected") || !strings.Contains(out, "short: FAILED") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 corrected (3 symbols), 0 uncorrectable, 1 invalid") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestFieldCommand(t *testing.T) {
	out, err := run(t, "field", "--field", "datamatrix")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if !strings.Contains(out, "primitive:      0x12d") || !strings.Contains(out, "generator base: 1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestUnknownField(t *testing.T) {
	if _, err := run(t, "field", "--field", "aztec"); err == nil {
		t.Error("unknown field should fail")
	}
}
