package sentiment

import (
	"encoding/gob"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Artifacts are opaque gob blobs. The wire structs below are the durable
// form of the trained state; the in-memory types are rebuilt on decode so
// that validation always runs on load.

type vectorizerArtifact struct {
	Vocabulary map[string]int
	IDF        []float64
}

type classifierArtifact struct {
	Classes    []string
	Weights    [][]float64
	Intercepts []float64
}

// EncodeVectorizer writes the fitted vectorizer state to w.
func EncodeVectorizer(w io.Writer, v *Vectorizer) error {
	a := vectorizerArtifact{Vocabulary: v.vocabulary, IDF: v.idf}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encoding vectorizer: %w", err)
	}
	return nil
}

// DecodeVectorizer reads vectorizer state from r and validates it.
func DecodeVectorizer(r io.Reader) (*Vectorizer, error) {
	var a vectorizerArtifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding vectorizer: %w", err)
	}
	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer artifact has empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return nil, fmt.Errorf("vectorizer artifact is inconsistent: %d idf values for %d terms",
			len(a.IDF), len(a.Vocabulary))
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.IDF) {
			return nil, fmt.Errorf("vectorizer artifact is inconsistent: term %q has index %d", term, idx)
		}
	}
	return &Vectorizer{vocabulary: a.Vocabulary, idf: a.IDF}, nil
}

// EncodeClassifier writes the trained classifier state to w.
func EncodeClassifier(w io.Writer, c *Classifier) error {
	rows, cols := c.weights.Dims()
	weights := make([][]float64, rows)
	for k := 0; k < rows; k++ {
		weights[k] = make([]float64, cols)
		copy(weights[k], c.weights.RawRowView(k))
	}
	a := classifierArtifact{Classes: c.classes, Weights: weights, Intercepts: c.intercepts}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encoding classifier: %w", err)
	}
	return nil
}

// DecodeClassifier reads classifier state from r and validates it,
// including the label contract: every class must be one of the canonical
// title-cased labels, otherwise the history count map would silently drop
// its predictions.
func DecodeClassifier(r io.Reader) (*Classifier, error) {
	var a classifierArtifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding classifier: %w", err)
	}
	if len(a.Classes) == 0 || len(a.Weights) != len(a.Classes) {
		return nil, fmt.Errorf("classifier artifact is inconsistent: %d weight rows for %d classes",
			len(a.Weights), len(a.Classes))
	}
	for _, class := range a.Classes {
		if !IsCanonicalLabel(class) {
			return nil, fmt.Errorf("classifier artifact has unknown label %q, want one of %v", class, Labels)
		}
	}

	cols := len(a.Weights[0])
	if cols == 0 {
		return nil, fmt.Errorf("classifier artifact has no features")
	}
	weights := mat.NewDense(len(a.Classes), cols, nil)
	for k, row := range a.Weights {
		if len(row) != cols {
			return nil, fmt.Errorf("classifier artifact has ragged weight rows")
		}
		weights.SetRow(k, row)
	}

	return NewClassifier(a.Classes, weights, a.Intercepts)
}
