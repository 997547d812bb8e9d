// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package normalize

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/helper/gc"
)

// ArmorMarker is the prefix shared by every PEM boundary line.
const ArmorMarker = "-----BEGIN"

// Step names the normalization step that failed.
type Step string

const (
	// StepArmor is the pass-through path for PEM armored text.
	StepArmor Step = "armor"
	// StepHex is the hex recovery path.
	StepHex Step = "hex"
)

// ErrInvalidUTF8 indicates armored text that cannot be encoded as UTF-8.
var ErrInvalidUTF8 = errors.New("normalize: armored text is not valid UTF-8")

// Error reports a normalization failure together with the step it happened in.
type Error struct {
	Step Step
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("normalize: %s step: %v", e.Step, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Normalize converts a raw stored field into canonical bytes.
//
// The field is trimmed first. If it contains [ArmorMarker] it is returned as
// its UTF-8 bytes. Otherwise every \x escape and every character that is not
// a hexadecimal digit is dropped, a single '0' is appended when the digit count
// is odd, and the digits are decoded. A field without any hex digits yields an
// empty, non-nil slice.
//
// Normalize is a pure function and safe for concurrent use.
func Normalize(raw string) ([]byte, error) {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, ArmorMarker) {
		if !utf8.ValidString(text) {
			return nil, &Error{Step: StepArmor, Err: ErrInvalidUTF8}
		}
		return []byte(text), nil
	}

	return decodeHex(text)
}

// IsArmored reports whether Normalize would pass raw through as armored text.
func IsArmored(raw string) bool { return strings.Contains(strings.TrimSpace(raw), ArmorMarker) }

func decodeHex(text string) ([]byte, error) {
	text = strings.ReplaceAll(text, `\x`, "")

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Spaces, separators and stray punctuation all fall out here.
	for i := 0; i < len(text); i++ {
		if isHexDigit(text[i]) {
			if err := buf.WriteByte(text[i]); err != nil {
				return nil, &Error{Step: StepHex, Err: err}
			}
		}
	}

	// Odd count: pad the low nibble of the last octet.
	if buf.Len()%2 != 0 {
		if err := buf.WriteByte('0'); err != nil {
			return nil, &Error{Step: StepHex, Err: err}
		}
	}

	out := make([]byte, hex.DecodedLen(buf.Len()))
	if _, err := hex.Decode(out, buf.Bytes()); err != nil {
		return nil, &Error{Step: StepHex, Err: err}
	}

	return out, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
