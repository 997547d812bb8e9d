// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import "fmt"

// EncodingKind identifies the encoding a certificate blob was decoded from.
type EncodingKind int

const (
	// Unknown is assigned only when no rule produced a certificate.
	Unknown EncodingKind = iota
	// PEM is a single base64 armored certificate.
	PEM
	// DER is a bare binary ASN.1 certificate.
	DER
	// PKCS7PEM is an armored PKCS7 structure.
	PKCS7PEM
	// PKCS7DER is a binary PKCS7 structure.
	PKCS7DER
)

var kindNames = [...]string{
	Unknown:  "Unknown",
	PEM:      "PEM",
	DER:      "DER",
	PKCS7PEM: "PKCS7_PEM",
	PKCS7DER: "PKCS7_DER",
}

// Kinds lists every encoding a successful decode can report, in detection order.
var Kinds = []EncodingKind{PEM, PKCS7PEM, DER, PKCS7DER}

// String returns the label used in logs, reports and metrics.
func (k EncodingKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("EncodingKind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k EncodingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *EncodingKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = EncodingKind(i)
			return nil
		}
	}
	return fmt.Errorf("x509certs: unknown encoding kind %q", text)
}
