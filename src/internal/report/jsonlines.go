// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
)

// Line is the JSON form of one Outcome.
type Line struct {
	ID        string     `json:"id"`
	Success   bool       `json:"success"`
	Kind      string     `json:"kind"`
	Attempted string     `json:"attempted"`
	Stage     string     `json:"stage,omitempty"`
	Message   string     `json:"message,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	Serial    string     `json:"serialNumber,omitempty"`
	NotBefore *time.Time `json:"notBefore,omitempty"`
	NotAfter  *time.Time `json:"notAfter,omitempty"`

	SignatureAlgorithm string `json:"signatureAlgorithm,omitempty"`
	PublicKey          string `json:"publicKey,omitempty"`
	ValidityDays       int    `json:"validityDays,omitempty"`
	SANCount           int    `json:"sanCount,omitempty"`
	Wildcard           bool   `json:"wildcard,omitempty"`
}

// NewLine flattens o into its JSON form.
func NewLine(o classify.Outcome) Line {
	l := Line{
		ID:        o.ID,
		Success:   o.Success,
		Kind:      o.Kind.String(),
		Attempted: o.Attempted.String(),
		Stage:     string(o.Stage),
		Message:   o.Message,
	}
	if c := o.Certificate; c != nil {
		notBefore, notAfter := c.NotBefore.UTC(), c.NotAfter.UTC()
		l.Subject = c.Subject.String()
		l.Issuer = c.Issuer.String()
		l.Serial = c.SerialNumber.String()
		l.NotBefore = &notBefore
		l.NotAfter = &notAfter
		l.SignatureAlgorithm = c.SignatureAlgorithm.String()
		l.PublicKey = keyDescription(c)
		l.ValidityDays = int(notAfter.Sub(notBefore) / (24 * time.Hour))
		l.SANCount = len(c.DNSNames) + len(c.IPAddresses) + len(c.EmailAddresses) + len(c.URIs)
		l.Wildcard = isWildcard(c)
	}
	return l
}

// JSONLines writes each Outcome as a single JSON line.
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines returns a sink that writes to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

// Write encodes o followed by a newline.
func (j *JSONLines) Write(o classify.Outcome) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.enc.Encode(NewLine(o)); err != nil {
		return fmt.Errorf("report: failed to encode record %s: %w", o.ID, err)
	}
	return nil
}

// isWildcard reports whether the subject or any DNS name covers a wildcard.
func isWildcard(c *x509.Certificate) bool {
	if strings.HasPrefix(c.Subject.CommonName, "*.") {
		return true
	}
	for _, name := range c.DNSNames {
		if strings.HasPrefix(name, "*.") {
			return true
		}
	}
	return false
}
