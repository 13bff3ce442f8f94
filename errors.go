package zxingrs

import "github.com/pkg/errors"

var (
	// ErrChecksum is returned when the codewords hold more errors than the
	// error-correction codewords can repair.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when the codewords or their parameters are malformed.
	ErrFormat = errors.New("format error")
)
