// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrEmptyInput indicates that there were no canonical bytes to decode.
	ErrEmptyInput = errors.New("x509certs: empty input")

	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block of the expected type.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Decoder classifies and decodes [X.509] certificate blobs.
// It maintains internal configuration such as the PEM block types it accepts.
//
// A Decoder holds no per-blob state and is safe for concurrent use.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Decoder struct {
	certBlockType  string
	pkcs7BlockType string
	rules          []rule
}

// New creates a new Decoder with default settings.
func New() *Decoder {
	d := &Decoder{
		certBlockType:  "CERTIFICATE",
		pkcs7BlockType: "PKCS7",
	}
	d.rules = d.defaultRules()
	return d
}

// findPEMBlock returns the first PEM block of the given type.
// Blocks of other types and malformed blocks are skipped.
func findPEMBlock(data []byte, blockType string) (*pem.Block, error) {
	rest := data
	for len(rest) > 0 {
		block, remainder := pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type == blockType {
			return block, nil
		}
		rest = remainder
	}
	return nil, ErrInvalidPEMBlock
}

// decodePEM decodes the first certificate PEM block in data.
func (d *Decoder) decodePEM(data []byte) (*x509.Certificate, error) {
	block, err := findPEMBlock(data, d.certBlockType)
	if err != nil {
		return nil, err
	}
	return d.decodeDER(block.Bytes)
}

// decodeDER decodes a bare DER certificate.
func (d *Decoder) decodeDER(data []byte) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}
	return cert, nil
}

// decodePKCS7PEM decodes the first PKCS7 PEM block in data and returns its first certificate.
func (d *Decoder) decodePKCS7PEM(data []byte) (*x509.Certificate, error) {
	block, err := findPEMBlock(data, d.pkcs7BlockType)
	if err != nil {
		return nil, err
	}
	return d.decodePKCS7DER(block.Bytes)
}

// decodePKCS7DER parses a DER PKCS7 structure using Cloudflare's library
// and returns the first embedded certificate.
func (d *Decoder) decodePKCS7DER(data []byte) (*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsePKCS7, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// EncodePEM encodes a certificate to PEM format.
func (d *Decoder) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  d.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}
