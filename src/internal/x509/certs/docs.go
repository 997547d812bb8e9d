// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs detects the encoding of a canonical certificate blob and
// decodes it into an [X.509] certificate.
//
// Detection walks a fixed, ordered list of rules: [PEM] certificate armor,
// [PKCS7] armor, bare DER, and finally a DER encoded PKCS7 envelope. Armor
// markers are unambiguous, so a blob carrying one is decoded only as that
// encoding; binary input has no marker and is resolved by trial. The package
// answers whether a blob is structurally a certificate, never whether it is
// trustworthy: no signature, chain or validity period is checked.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
