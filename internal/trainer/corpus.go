// Package trainer implements the offline training pipeline: corpus
// loading, deterministic train/test splitting, model fitting, and held-out
// evaluation. It is a run-to-completion batch process with no interaction
// with the live server.
package trainer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sample is one labeled review from the training corpus.
type Sample struct {
	Review    string
	Sentiment string
}

// LoadCorpus reads a CSV corpus with "review" and "sentiment" columns
// (header required, extra columns ignored). Rows with a missing value in
// either column are dropped; the second return value is the dropped count.
func LoadCorpus(path string) ([]Sample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	return readCorpus(f)
}

func readCorpus(r io.Reader) ([]Sample, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading corpus header: %w", err)
	}

	reviewCol, sentimentCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "review":
			reviewCol = i
		case "sentiment":
			sentimentCol = i
		}
	}
	if reviewCol < 0 || sentimentCol < 0 {
		return nil, 0, fmt.Errorf("corpus is missing review/sentiment columns, header: %v", header)
	}

	var samples []Sample
	dropped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading corpus row: %w", err)
		}

		var review, label string
		if reviewCol < len(record) {
			review = strings.TrimSpace(record[reviewCol])
		}
		if sentimentCol < len(record) {
			label = strings.TrimSpace(record[sentimentCol])
		}
		if review == "" || label == "" {
			dropped++
			continue
		}
		samples = append(samples, Sample{Review: review, Sentiment: label})
	}

	return samples, dropped, nil
}
