// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	x509certs "github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/normalize"
	"github.com/H0llyW00dzZ/x509-blob-classifier/src/logger"
)

var (
	// ErrNilSource indicates Run was called without a data source.
	ErrNilSource = errors.New("classify: nil source")

	// ErrFetch indicates the data source could not produce a batch.
	ErrFetch = errors.New("classify: failed to fetch records")

	// ErrSinkWrite indicates at least one sink rejected an outcome.
	ErrSinkWrite = errors.New("classify: sink write failed")
)

// Classifier normalizes and decodes stored certificate fields.
type Classifier struct {
	decoder *x509certs.Decoder
	log     logger.Logger
	workers int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWorkers classifies up to n records concurrently. Outcomes still reach
// sinks in source order. Values below 2 keep the loop sequential.
func WithWorkers(n int) Option {
	return func(c *Classifier) { c.workers = n }
}

// WithDecoder replaces the default decoder.
func WithDecoder(d *x509certs.Decoder) Option {
	return func(c *Classifier) {
		if d != nil {
			c.decoder = d
		}
	}
}

// New creates a Classifier that reports per-record diagnostics to log.
func New(log logger.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		decoder: x509certs.New(),
		log:     log,
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs one record through the normalizer and the detector.
// Failures are logged and described by the returned Outcome; Classify never
// returns an error.
func (c *Classifier) Classify(rec Record) Outcome {
	canonical, err := normalize.Normalize(rec.Raw)
	if err != nil {
		out := Outcome{
			ID:        rec.ID,
			Kind:      x509certs.Unknown,
			Attempted: x509certs.Unknown,
			Stage:     StageNormalize,
			Message:   oneLine(err.Error()),
		}
		c.logFailure(out)
		return out
	}

	res := c.decoder.Detect(canonical)
	if !res.OK() {
		msg := "no certificate decoded"
		if res.Err != nil {
			msg = oneLine(res.Err.Error())
		}
		out := Outcome{
			ID:        rec.ID,
			Kind:      x509certs.Unknown,
			Attempted: res.Attempted,
			Stage:     StageDecode,
			Message:   msg,
		}
		c.logFailure(out)
		return out
	}

	return Outcome{
		ID:          rec.ID,
		Success:     true,
		Kind:        res.Kind,
		Attempted:   res.Attempted,
		Certificate: res.Certificate,
	}
}

// logFailure reports a failed outcome. Loggers that take fields get the
// record id, stage and attempted encoding as separate keys.
func (c *Classifier) logFailure(o Outcome) {
	if fl, ok := c.log.(logger.FieldLogger); ok {
		kv := []any{"id", o.ID, "stage", string(o.Stage)}
		if o.Stage == StageDecode {
			kv = append(kv, "attempted", o.Attempted.String())
		}
		fl.Warnw("record classification failed", append(kv, "error", o.Message)...)
		return
	}

	if o.Stage == StageDecode {
		c.log.Printf("record %s: stage=%s attempted=%s: %s", o.ID, o.Stage, o.Attempted, o.Message)
		return
	}
	c.log.Printf("record %s: stage=%s: %s", o.ID, o.Stage, o.Message)
}

// oneLine folds a joined multi-line error into a single line.
func oneLine(msg string) string {
	return strings.ReplaceAll(msg, "\n", "; ")
}

// Run fetches one batch from src, classifies every record and writes each
// Outcome to every sink.
//
// A fetch failure aborts the run. Sink failures are logged, the batch carries
// on, and they are returned together once all records were processed. When ctx
// is cancelled Run stops between records and returns the partial Tally.
func (c *Classifier) Run(ctx context.Context, src Source, sinks ...Sink) (Tally, error) {
	tally := NewTally()
	if src == nil {
		return tally, ErrNilSource
	}

	records, err := src.Fetch(ctx)
	if err != nil {
		return tally, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	c.log.Printf("fetched %d records", len(records))

	var outcomes []Outcome
	if c.workers > 1 && len(records) > 1 {
		outcomes = c.classifyConcurrently(ctx, records)
	}

	var sinkErrs []error
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		var out Outcome
		if outcomes != nil {
			out = outcomes[i]
		} else {
			out = c.Classify(rec)
		}

		tally.Add(out)
		for _, sink := range sinks {
			if err := sink.Write(out); err != nil {
				c.log.Printf("record %s: sink write failed: %v", rec.ID, err)
				sinkErrs = append(sinkErrs, fmt.Errorf("record %s: %w", rec.ID, err))
			}
		}
	}

	if len(sinkErrs) > 0 {
		return tally, fmt.Errorf("%w: %w", ErrSinkWrite, errors.Join(sinkErrs...))
	}
	return tally, nil
}

// classifyConcurrently fills one Outcome per record using a fixed worker pool.
// Records not reached before ctx is cancelled are left zero-valued; Run
// notices the cancellation before emitting them.
func (c *Classifier) classifyConcurrently(ctx context.Context, records []Record) []Outcome {
	outcomes := make([]Outcome, len(records))
	jobs := make(chan int)

	workers := min(c.workers, len(records))

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = c.Classify(records[i])
			}
		}()
	}

	func() {
		defer close(jobs)
		for i := range records {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return outcomes
}
