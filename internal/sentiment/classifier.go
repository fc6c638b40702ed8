package sentiment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Classifier is a linear model over TF-IDF features: one weight row and one
// intercept per class, predict = argmax of the class scores. Immutable once
// constructed and safe for concurrent use.
type Classifier struct {
	classes    []string
	weights    *mat.Dense
	intercepts []float64
}

// NewClassifier builds a classifier from per-class weight rows and
// intercepts. The weight matrix must have one row per class.
func NewClassifier(classes []string, weights *mat.Dense, intercepts []float64) (*Classifier, error) {
	rows, _ := weights.Dims()
	if len(classes) == 0 {
		return nil, fmt.Errorf("classifier has no classes")
	}
	if rows != len(classes) {
		return nil, fmt.Errorf("weight rows (%d) do not match classes (%d)", rows, len(classes))
	}
	if len(intercepts) != len(classes) {
		return nil, fmt.Errorf("intercepts (%d) do not match classes (%d)", len(intercepts), len(classes))
	}
	return &Classifier{classes: classes, weights: weights, intercepts: intercepts}, nil
}

// Classes returns the class labels in score order.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

// NumFeatures returns the expected input dimensionality.
func (c *Classifier) NumFeatures() int {
	_, cols := c.weights.Dims()
	return cols
}

// Scores returns the raw linear score for each class.
func (c *Classifier) Scores(x SparseVector) []float64 {
	scores := make([]float64, len(c.classes))
	copy(scores, c.intercepts)
	for j, v := range x {
		for k := range c.classes {
			scores[k] += c.weights.At(k, j) * v
		}
	}
	return scores
}

// Predict returns the label of the highest-scoring class. An all-zero input
// falls back to the class with the largest intercept.
func (c *Classifier) Predict(x SparseVector) string {
	scores := c.Scores(x)
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return c.classes[best]
}
