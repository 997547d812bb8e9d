// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
)

const (
	outcomeClassified = "classified"
	outcomeFailed     = "failed"
	stageNone         = "none"
)

// Metrics counts outcomes as x509blob_records_total{outcome,kind,stage}.
//
// Each Metrics owns its registry so several batches in one process do not
// share counters.
type Metrics struct {
	registry *prometheus.Registry
	records  *prometheus.CounterVec
}

// NewMetrics creates and registers the counters.
func NewMetrics() (*Metrics, error) {
	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "x509blob",
			Name:      "records_total",
			Help:      "Counts classified certificate records by outcome, encoding and failure stage.",
		},
		[]string{"outcome", "kind", "stage"},
	)

	registry := prometheus.NewRegistry()
	if err := registry.Register(records); err != nil {
		return nil, fmt.Errorf("report: failed to register metrics: %w", err)
	}

	return &Metrics{registry: registry, records: records}, nil
}

// Write increments the counter matching o.
func (m *Metrics) Write(o classify.Outcome) error {
	outcome := outcomeFailed
	if o.Success {
		outcome = outcomeClassified
	}
	stage := string(o.Stage)
	if stage == "" {
		stage = stageNone
	}

	m.records.WithLabelValues(outcome, o.Kind.String(), stage).Inc()
	return nil
}

// Gatherer exposes the registry, for example to an HTTP handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current counters to path in the text exposition
// format read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("report: failed to write metrics: %w", err)
	}
	return nil
}
