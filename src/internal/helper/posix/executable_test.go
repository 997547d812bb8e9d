// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Absolute Unix Path", args: []string{"/usr/local/bin/x509-blob-classifier"}, expected: "x509-blob-classifier"},
		{name: "Relative Path", args: []string{"./classifier"}, expected: "classifier"},
		{name: "Just Filename", args: []string{"classifier"}, expected: "classifier"},
		{name: "Windows Path", args: []string{`C:\bin\classifier.exe`}, expected: "classifier"},
		{name: "Exe Suffix", args: []string{"classifier.exe"}, expected: "classifier"},
		{name: "Empty Args", args: []string{}, expected: DefaultExecutableName},
		{name: "Empty First Arg", args: []string{""}, expected: DefaultExecutableName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			t.Cleanup(func() { os.Args = orig })

			os.Args = tt.args
			assert.Equal(t, tt.expected, ExecutableName())
		})
	}
}
