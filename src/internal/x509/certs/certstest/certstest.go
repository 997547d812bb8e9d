// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certstest builds certificate fixtures in every encoding the
// classifier recognizes. It is meant for tests only.
package certstest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	oidData       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}
	oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}
)

// NewCertificate returns a freshly generated self-signed ECDSA certificate.
func NewCertificate(tb testing.TB, commonName string) *x509.Certificate {
	tb.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(tb, err, "generate key")

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	require.NoError(tb, err, "generate serial")

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName, Organization: []string{"Blob Classifier Test"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{commonName},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(tb, err, "create certificate")

	cert, err := x509.ParseCertificate(der)
	require.NoError(tb, err, "parse generated certificate")
	return cert
}

// PEM armors cert as a CERTIFICATE block.
func PEM(cert *x509.Certificate) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}))
}

// Hex renders der as lowercase hex.
func Hex(der []byte) string { return hex.EncodeToString(der) }

// SpacedHex renders der as space separated uppercase octets, like "30 82 01 0A".
func SpacedHex(der []byte) string {
	octets := make([]string, len(der))
	for i, b := range der {
		octets[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(octets, " ")
}

// Bytea renders der the way Postgres prints a bytea column in hex output mode.
func Bytea(der []byte) string { return `\x` + hex.EncodeToString(der) }

// PKCS7DER wraps certs in a degenerate (certificates only) PKCS7 SignedData
// structure. Passing no certificates yields an envelope with an empty list.
func PKCS7DER(tb testing.TB, certs ...*x509.Certificate) []byte {
	tb.Helper()

	var certBytes []byte
	for _, c := range certs {
		certBytes = append(certBytes, c.Raw...)
	}

	emptySet := asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagSet, IsCompound: true}

	inner, err := asn1.Marshal(struct {
		ContentType asn1.ObjectIdentifier
	}{ContentType: oidData})
	require.NoError(tb, err, "marshal content info")

	sd, err := asn1.Marshal(struct {
		Version          int
		DigestAlgorithms asn1.RawValue
		ContentInfo      asn1.RawValue
		Certificates     asn1.RawValue
		CRLs             asn1.RawValue
		SignerInfos      asn1.RawValue
	}{
		Version:          1,
		DigestAlgorithms: emptySet,
		ContentInfo:      asn1.RawValue{FullBytes: inner},
		Certificates:     asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: 0, IsCompound: true, Bytes: certBytes},
		CRLs:             asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: 1, IsCompound: true},
		SignerInfos:      emptySet,
	})
	require.NoError(tb, err, "marshal signed data")

	out, err := asn1.Marshal(struct {
		ContentType asn1.ObjectIdentifier
		Content     asn1.RawValue
	}{
		ContentType: oidSignedData,
		Content:     asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: 0, IsCompound: true, Bytes: sd},
	})
	require.NoError(tb, err, "marshal content info wrapper")
	return out
}

// PKCS7PEM armors the output of [PKCS7DER] as a PKCS7 block.
func PKCS7PEM(tb testing.TB, certs ...*x509.Certificate) string {
	tb.Helper()
	return string(pem.EncodeToMemory(&pem.Block{Type: "PKCS7", Bytes: PKCS7DER(tb, certs...)}))
}
