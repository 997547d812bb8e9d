// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
	x509certs "github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/x509/certs"
)

// Summary renders the aggregate counts of a batch.
type Summary struct {
	Tally classify.Tally
}

// Render writes the totals line followed by a markdown table of counts per
// encoding and per failure stage.
func (s Summary) Render(w io.Writer) error {
	t := s.Tally
	if _, err := fmt.Fprintf(w, "Processed %d certificates, %d could not be processed\n\n", t.Classified, t.Failed); err != nil {
		return err
	}

	rows := [][]string{{"Total", "records", strconv.Itoa(t.Seen)}}
	for _, kind := range x509certs.Kinds {
		rows = append(rows, []string{"Encoding", kind.String(), strconv.Itoa(t.ByKind[kind])})
	}

	stages := make([]string, 0, len(t.ByStage))
	for stage := range t.ByStage {
		stages = append(stages, string(stage))
	}
	sort.Strings(stages)
	for _, stage := range stages {
		rows = append(rows, []string{"Failed", stage, strconv.Itoa(t.ByStage[classify.Stage(stage)])})
	}

	return renderMarkdown(w, []string{"Group", "Name", "Count"}, rows)
}
