// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report_test

import (
	"bufio"
	"bytes"
	"crypto/x509"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/report"
	x509certs "github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/certs/certstest"
)

func outcomes(t *testing.T) (*x509.Certificate, []classify.Outcome) {
	t.Helper()
	leaf := certstest.NewCertificate(t, "report.example.test")
	return leaf, []classify.Outcome{
		{ID: "1", Success: true, Kind: x509certs.PEM, Attempted: x509certs.PEM, Certificate: leaf},
		{ID: "2", Success: true, Kind: x509certs.DER, Attempted: x509certs.DER, Certificate: leaf},
		{ID: "3", Kind: x509certs.Unknown, Attempted: x509certs.PKCS7DER, Stage: classify.StageDecode, Message: "empty input"},
		{ID: "4", Kind: x509certs.Unknown, Attempted: x509certs.Unknown, Stage: classify.StageNormalize, Message: "invalid UTF-8"},
		{ID: "5", Success: true, Kind: x509certs.PEM, Attempted: x509certs.PEM, Certificate: leaf},
	}
}

func TestJSONLines(t *testing.T) {
	leaf, outs := outcomes(t)

	var buf bytes.Buffer
	sink := report.NewJSONLines(&buf)
	for _, o := range outs {
		require.NoError(t, sink.Write(o))
	}

	var lines []report.Line
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var l report.Line
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &l), "each line must be a JSON object")
		lines = append(lines, l)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, len(outs))

	ok := lines[0]
	assert.Equal(t, "1", ok.ID)
	assert.True(t, ok.Success)
	assert.Equal(t, "PEM", ok.Kind)
	assert.Empty(t, ok.Stage)
	assert.Equal(t, leaf.Subject.String(), ok.Subject)
	assert.Equal(t, leaf.SerialNumber.String(), ok.Serial)
	require.NotNil(t, ok.NotAfter)
	assert.True(t, leaf.NotAfter.Equal(*ok.NotAfter))

	failed := lines[2]
	assert.False(t, failed.Success)
	assert.Equal(t, "Unknown", failed.Kind)
	assert.Equal(t, "PKCS7_DER", failed.Attempted)
	assert.Equal(t, "decode", failed.Stage)
	assert.Equal(t, "empty input", failed.Message)
	assert.Empty(t, failed.Subject)
	assert.Nil(t, failed.NotBefore)
}

func TestNewLine_CertificateFeatures(t *testing.T) {
	tests := []struct {
		name     string
		cn       string
		wildcard bool
	}{
		{name: "Plain", cn: "plain.example.test"},
		{name: "Wildcard", cn: "*.wild.example.test", wildcard: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := certstest.NewCertificate(t, tt.cn)

			l := report.NewLine(classify.Outcome{ID: "1", Success: true, Kind: x509certs.DER, Certificate: leaf})

			assert.Equal(t, leaf.SignatureAlgorithm.String(), l.SignatureAlgorithm)
			assert.Equal(t, "256-bit ECDSA", l.PublicKey)
			assert.Equal(t, 1, l.ValidityDays)
			assert.Equal(t, 1, l.SANCount)
			assert.Equal(t, tt.wildcard, l.Wildcard)
		})
	}

	t.Run("Failure", func(t *testing.T) {
		l := report.NewLine(classify.Outcome{ID: "2", Stage: classify.StageDecode})
		assert.Empty(t, l.SignatureAlgorithm)
		assert.Zero(t, l.ValidityDays)
		assert.False(t, l.Wildcard)
	})
}

func TestJSONLines_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	sink := report.NewJSONLines(&buf)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Write(classify.Outcome{ID: "x", Stage: classify.StageDecode}))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 50)
	for _, l := range lines {
		assert.True(t, json.Valid([]byte(l)), "interleaved write: %q", l)
	}
}

func TestTable(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Rows",
			testFunc: func(t *testing.T) {
				_, outs := outcomes(t)
				table := report.NewTable()
				for _, o := range outs {
					require.NoError(t, table.Write(o))
				}
				assert.Equal(t, len(outs), table.Len())

				out := table.String()
				assert.Contains(t, out, "report.example.test")
				assert.Contains(t, out, "256-bit ECDSA")
				assert.Contains(t, out, "decode (PKCS7_DER): empty input")
				assert.Contains(t, out, "normalize (Unknown): invalid UTF-8")
				assert.Contains(t, out, "|")
			},
		},
		{
			name: "Empty",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, report.NewTable().Render(&buf))
				assert.Equal(t, "No records to display\n", buf.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestMetrics(t *testing.T) {
	_, outs := outcomes(t)

	m, err := report.NewMetrics()
	require.NoError(t, err)
	for _, o := range outs {
		require.NoError(t, m.Write(o))
	}

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "x509blob_records_total", families[0].GetName())
	assert.Len(t, families[0].GetMetric(), 4, "PEM, DER and two failure stages")

	path := filepath.Join(t.TempDir(), "x509blob.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `x509blob_records_total{kind="PEM",outcome="classified",stage="none"} 2`)
	assert.Contains(t, text, `x509blob_records_total{kind="DER",outcome="classified",stage="none"} 1`)
	assert.Contains(t, text, `x509blob_records_total{kind="Unknown",outcome="failed",stage="decode"} 1`)
	assert.Contains(t, text, `x509blob_records_total{kind="Unknown",outcome="failed",stage="normalize"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	first, err := report.NewMetrics()
	require.NoError(t, err)
	second, err := report.NewMetrics()
	require.NoError(t, err, "a second instance must not collide with the first")

	require.NoError(t, first.Write(classify.Outcome{ID: "1", Success: true, Kind: x509certs.DER}))

	families, err := second.Gatherer().Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestMetrics_WriteTextfileBadPath(t *testing.T) {
	m, err := report.NewMetrics()
	require.NoError(t, err)

	err = m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	_, outs := outcomes(t)
	tally := classify.NewTally()
	for _, o := range outs {
		tally.Add(o)
	}

	var buf bytes.Buffer
	require.NoError(t, report.Summary{Tally: tally}.Render(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Processed 3 certificates, 2 could not be processed\n"))
	for _, want := range []string{"PEM", "DER", "PKCS7_PEM", "PKCS7_DER", "decode", "normalize"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "decode"), strings.Index(out, "normalize"), "stages are listed in name order")
}
