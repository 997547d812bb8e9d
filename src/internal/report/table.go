// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
)

// tableHeaders are the columns of the per-record table.
var tableHeaders = []string{"ID", "Result", "Encoding", "Subject", "Issuer", "Valid Until", "Key", "Detail"}

// Table collects one row per Outcome until Render is called.
type Table struct {
	mu   sync.Mutex
	rows [][]string
}

// NewTable returns an empty table sink.
func NewTable() *Table {
	return &Table{}
}

// Write appends a row for o.
func (t *Table) Write(o classify.Outcome) error {
	row := []string{o.ID, "failed", o.Kind.String(), "", "", "", "", ""}
	if o.Success {
		row[1] = "ok"
	} else {
		row[7] = fmt.Sprintf("%s (%s): %s", o.Stage, o.Attempted, o.Message)
	}
	if c := o.Certificate; c != nil {
		row[3] = c.Subject.CommonName
		row[4] = c.Issuer.CommonName
		row[5] = c.NotAfter.UTC().Format("2006-01-02")
		row[6] = keyDescription(c)
	}

	t.mu.Lock()
	t.rows = append(t.rows, row)
	t.mu.Unlock()
	return nil
}

// Len returns the number of collected rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Render writes the collected rows to w as a markdown table.
func (t *Table) Render(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.rows) == 0 {
		_, err := io.WriteString(w, "No records to display\n")
		return err
	}

	return renderMarkdown(w, tableHeaders, t.rows)
}

// String renders the table into a string.
func (t *Table) String() string {
	var buf strings.Builder
	if err := t.Render(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

func renderMarkdown(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header(headers)

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("report: failed to add rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("report: failed to render table: %w", err)
	}
	return nil
}

// keyDescription names the public key algorithm and size of c.
func keyDescription(c *x509.Certificate) string {
	switch k := c.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", k.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", k.Curve.Params().BitSize)
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return c.PublicKeyAlgorithm.String()
	}
}
