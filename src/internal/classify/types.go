// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package classify

import (
	"context"
	"crypto/x509"

	x509certs "github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/certs"
)

// Record is one stored certificate field and the opaque identifier of the row it came from.
type Record struct {
	ID  string `json:"id" yaml:"id"`
	Raw string `json:"body" yaml:"body"`
}

// Source yields the batch of records to classify.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// Sink receives one Outcome per classified record.
type Sink interface {
	Write(o Outcome) error
}

// Stage names the pipeline step a record failed in.
type Stage string

const (
	// StageNone marks a successful outcome.
	StageNone Stage = ""
	// StageNormalize marks a raw field that could not become canonical bytes.
	StageNormalize Stage = "normalize"
	// StageDecode marks canonical bytes that matched no encoding.
	StageDecode Stage = "decode"
)

// Outcome is the classification of a single record.
type Outcome struct {
	ID      string
	Success bool
	// Kind is the detected encoding, or Unknown on failure.
	Kind x509certs.EncodingKind
	// Attempted is the last encoding tried; it equals Kind on success.
	Attempted x509certs.EncodingKind
	Stage     Stage
	// Message is the diagnostic for a failed record.
	Message     string
	Certificate *x509.Certificate
}

// Tally aggregates outcomes across a batch.
type Tally struct {
	Seen       int
	Classified int
	Failed     int
	ByKind     map[x509certs.EncodingKind]int
	ByStage    map[Stage]int
}

// NewTally returns an empty Tally.
func NewTally() Tally {
	return Tally{
		ByKind:  make(map[x509certs.EncodingKind]int),
		ByStage: make(map[Stage]int),
	}
}

// Add counts o.
func (t *Tally) Add(o Outcome) {
	if t.ByKind == nil {
		t.ByKind = make(map[x509certs.EncodingKind]int)
	}
	if t.ByStage == nil {
		t.ByStage = make(map[Stage]int)
	}

	t.Seen++
	if o.Success {
		t.Classified++
		t.ByKind[o.Kind]++
		return
	}
	t.Failed++
	t.ByStage[o.Stage]++
}
