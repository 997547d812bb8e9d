// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExecutableName is returned when os.Args carries no program name.
const DefaultExecutableName = "x509-blob-classifier"

// ExecutableName returns the base name of os.Args[0] without a .exe suffix.
//
//   - Linux/macOS: "x509-blob-classifier" from "/usr/local/bin/x509-blob-classifier"
//   - Windows: "x509-blob-classifier" from "C:\bin\x509-blob-classifier.exe"
func ExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return DefaultExecutableName
	}
	return baseName(os.Args[0])
}

func baseName(path string) string {
	name := filepath.Base(path)

	// filepath.Base only knows the host separator.
	if strings.ContainsAny(name, `/\`) {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name = parts[len(parts)-1]
		}
	}

	return strings.TrimSuffix(name, ".exe")
}
