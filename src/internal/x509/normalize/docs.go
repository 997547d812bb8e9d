// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package normalize turns a stored certificate field into the canonical byte
// sequence handed to format detection.
//
// Stored fields arrive in loosely specified shapes: PEM armored text, hex with
// whitespace or punctuation between octets, or Postgres bytea hex output with
// its leading \x escape. Armored text passes through untouched; everything else
// is treated as hex and recovered on a best-effort basis.
package normalize
