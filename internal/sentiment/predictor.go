package sentiment

import (
	"fmt"
	"strings"
)

// Predictor combines a fitted vectorizer and a trained classifier into the
// single read-only object the request handlers use. It is constructed once
// at startup and never mutated afterwards, so concurrent use needs no
// synchronization.
type Predictor struct {
	vectorizer *Vectorizer
	classifier *Classifier
}

// NewPredictor validates that the vectorizer and classifier were trained
// together (matching feature dimensionality) and pairs them.
func NewPredictor(v *Vectorizer, c *Classifier) (*Predictor, error) {
	if v.NumFeatures() != c.NumFeatures() {
		return nil, fmt.Errorf("vectorizer has %d features but classifier expects %d",
			v.NumFeatures(), c.NumFeatures())
	}
	return &Predictor{vectorizer: v, classifier: c}, nil
}

// Labels returns the class labels of the underlying classifier.
func (p *Predictor) Labels() []string {
	return p.classifier.Classes()
}

// Predict classifies text and returns one label from the trained label set.
// Empty or whitespace-only text is rejected before vectorization.
func (p *Predictor) Predict(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty input text")
	}
	return p.classifier.Predict(p.vectorizer.Transform(text)), nil
}
