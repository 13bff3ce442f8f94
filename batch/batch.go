// Package batch corrects many codeword blocks concurrently with one shared
// field and decoder.
package batch

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/zxingrs/reedsolomon"
)

// Block is one codeword block to correct. Codewords is corrected in place.
type Block struct {
	ID          string
	Codewords   []byte
	ECCodewords int
}

// Outcome is the result of correcting one Block. Err is nil, or an
// uncorrectable or invalid-input error from reedsolomon.
type Outcome struct {
	ID              string
	ErrorsCorrected int
	Corrections     []reedsolomon.Correction
	Err             error
}

// Summary counts outcomes by kind.
type Summary struct {
	Clean         int
	Corrected     int
	Uncorrectable int
	Invalid       int
	Symbols       int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch {
		case o.Err == nil && o.ErrorsCorrected == 0:
			s.Clean++
		case o.Err == nil:
			s.Corrected++
			s.Symbols += o.ErrorsCorrected
		case reedsolomon.KindOf(o.Err) == reedsolomon.KindUncorrectable:
			s.Uncorrectable++
		default:
			s.Invalid++
		}
	}
	return s
}

// Failed reports whether any block could not be corrected.
func (s Summary) Failed() bool { return s.Uncorrectable+s.Invalid > 0 }

// Corrector runs blocks through a bounded pool of workers.
type Corrector struct {
	decode  func(codewords []byte, ecCodewords int) ([]reedsolomon.Correction, error)
	workers int
	logger  log.Logger
}

// NewCorrector creates a Corrector for field. workers < 1 means one worker;
// a nil logger means the root logger.
func NewCorrector(field *reedsolomon.GenericGF, workers int, logger log.Logger) *Corrector {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Root()
	}
	return &Corrector{
		decode:  reedsolomon.NewDecoder(field).DecodeBytes,
		workers: workers,
		logger:  logger.With("field", field.String()),
	}
}

// Run corrects every block and returns one Outcome per block, in input order.
// Uncorrectable and malformed blocks are reported in their Outcome. Run
// itself fails only when ctx is cancelled or a block trips an arithmetic
// invariant, which indicates a bug rather than bad input.
func (c *Corrector) Run(ctx context.Context, blocks []Block) ([]Outcome, error) {
	start := time.Now()
	outcomes := make([]Outcome, len(blocks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range blocks {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := c.correct(blocks[i])
			outcomes[i] = outcome
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := Summarize(outcomes)
	c.logger.Info("Batch corrected", "blocks", len(blocks), "clean", s.Clean, "corrected", s.Corrected,
		"symbols", s.Symbols, "uncorrectable", s.Uncorrectable, "invalid", s.Invalid,
		"elapsed", time.Since(start))
	return outcomes, nil
}

func (c *Corrector) correct(b Block) (Outcome, error) {
	corrections, err := c.decode(b.Codewords, b.ECCodewords)
	outcome := Outcome{ID: b.ID, ErrorsCorrected: len(corrections), Corrections: corrections, Err: err}
	switch reedsolomon.KindOf(err) {
	case reedsolomon.KindUnknown:
		if err != nil {
			return outcome, errors.Wrapf(err, "block %s", b.ID)
		}
		if len(corrections) > 0 {
			c.logger.Debug("Corrected block", "id", b.ID, "errors", len(corrections))
		} else {
			c.logger.Trace("Block clean", "id", b.ID)
		}
	case reedsolomon.KindUncorrectable:
		c.logger.Warn("Block uncorrectable", "id", b.ID, "err", err)
	case reedsolomon.KindInvalidInput:
		c.logger.Warn("Block malformed", "id", b.ID, "err", err)
	default:
		c.logger.Error("Arithmetic invariant violated", "id", b.ID, "err", err)
		return outcome, errors.Wrapf(err, "block %s", b.ID)
	}
	return outcome, nil
}
