// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
)

const (
	// MarkerCertificate is the armor line that selects PEM decoding.
	MarkerCertificate = "-----BEGIN CERTIFICATE-----"
	// MarkerPKCS7 is the armor line that selects PKCS7 PEM decoding.
	MarkerPKCS7 = "-----BEGIN PKCS7-----"
)

// Result is the outcome of a single detection.
//
// On success Certificate is set and Kind names the matching encoding.
// On failure Certificate is nil, Kind is [Unknown], Attempted names the last
// encoding tried and Err carries the parse failure.
type Result struct {
	Certificate *x509.Certificate
	Kind        EncodingKind
	Attempted   EncodingKind
	Err         error
}

// OK reports whether the blob decoded into a certificate.
func (r Result) OK() bool { return r.Certificate != nil && r.Kind != Unknown }

// rule pairs a cheap predicate with a decode attempt.
type rule struct {
	kind   EncodingKind
	match  func(data []byte) bool
	decode func(data []byte) (*x509.Certificate, error)
	// terminal rules end detection when their predicate matched, even on failure.
	terminal bool
}

func always([]byte) bool { return true }

func contains(marker string) func([]byte) bool {
	m := []byte(marker)
	return func(data []byte) bool { return bytes.Contains(data, m) }
}

// defaultRules returns the detection order: armored formats first, binary by trial.
func (d *Decoder) defaultRules() []rule {
	return []rule{
		{kind: PEM, match: contains(MarkerCertificate), decode: d.decodePEM, terminal: true},
		{kind: PKCS7PEM, match: contains(MarkerPKCS7), decode: d.decodePKCS7PEM, terminal: true},
		{kind: DER, match: always, decode: d.decodeDER},
		{kind: PKCS7DER, match: always, decode: d.decodePKCS7DER, terminal: true},
	}
}

// Detect classifies canonical bytes and decodes the certificate they hold.
//
// The first rule whose predicate matches decides the encoding. An armored blob
// is decoded only as the armor it carries; binary input is tried as a bare DER
// certificate and then as a DER PKCS7 envelope. Detect never panics: a fault
// inside a parser is reported as a failed Result.
//
// Detect is safe for concurrent use.
func (d *Decoder) Detect(data []byte) (res Result) {
	attempted := Unknown

	defer func() {
		if r := recover(); r != nil {
			cause := ErrParseCertificate
			if attempted == PKCS7PEM || attempted == PKCS7DER {
				cause = ErrParsePKCS7
			}
			res = Result{Kind: Unknown, Attempted: attempted, Err: fmt.Errorf("%w: recovered: %v", cause, r)}
		}
	}()

	if len(data) == 0 {
		return Result{Kind: Unknown, Attempted: PKCS7DER, Err: ErrEmptyInput}
	}

	var errs []error
	for _, r := range d.rules {
		if !r.match(data) {
			continue
		}

		attempted = r.kind
		cert, err := r.decode(data)
		if err == nil {
			return Result{Certificate: cert, Kind: r.kind, Attempted: r.kind}
		}

		errs = append(errs, fmt.Errorf("%s: %w", r.kind, err))
		if r.terminal {
			break
		}
	}

	return Result{Kind: Unknown, Attempted: attempted, Err: errors.Join(errs...)}
}
