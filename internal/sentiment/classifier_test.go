package sentiment

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	// 3 classes x 2 features: feature 0 votes Positive, feature 1 Negative
	weights := mat.NewDense(3, 2, []float64{
		2, -1, // Positive
		-1, 2, // Negative
		0, 0, // Neutral
	})
	c, err := NewClassifier([]string{"Positive", "Negative", "Neutral"}, weights, []float64{0, 0, 0.1})
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}
	return c
}

func TestNewClassifier_DimensionChecks(t *testing.T) {
	w := mat.NewDense(2, 2, nil)
	if _, err := NewClassifier(nil, w, nil); err == nil {
		t.Fatal("expected error for empty class list")
	}
	if _, err := NewClassifier([]string{"Positive"}, w, []float64{0}); err == nil {
		t.Fatal("expected error for weight/class mismatch")
	}
	if _, err := NewClassifier([]string{"Positive", "Negative"}, w, []float64{0}); err == nil {
		t.Fatal("expected error for intercept/class mismatch")
	}
}

func TestClassifier_PredictArgmax(t *testing.T) {
	c := newTestClassifier(t)

	if got := c.Predict(SparseVector{0: 1}); got != "Positive" {
		t.Fatalf("Predict = %q, want Positive", got)
	}
	if got := c.Predict(SparseVector{1: 1}); got != "Negative" {
		t.Fatalf("Predict = %q, want Negative", got)
	}
	// zero vector falls back to argmax of intercepts
	if got := c.Predict(SparseVector{}); got != "Neutral" {
		t.Fatalf("Predict = %q, want Neutral", got)
	}
}

func TestClassifierArtifact_RoundTrip(t *testing.T) {
	c := newTestClassifier(t)

	var buf bytes.Buffer
	if err := EncodeClassifier(&buf, c); err != nil {
		t.Fatalf("EncodeClassifier error: %v", err)
	}
	got, err := DecodeClassifier(&buf)
	if err != nil {
		t.Fatalf("DecodeClassifier error: %v", err)
	}

	if got.NumFeatures() != c.NumFeatures() {
		t.Fatalf("feature count mismatch: %d != %d", got.NumFeatures(), c.NumFeatures())
	}
	for _, x := range []SparseVector{{0: 1}, {1: 1}, {}} {
		if got.Predict(x) != c.Predict(x) {
			t.Fatalf("decoded classifier disagrees with original on %v", x)
		}
	}
}

func TestDecodeClassifier_RejectsNonCanonicalLabel(t *testing.T) {
	weights := mat.NewDense(2, 1, []float64{1, -1})
	c, err := NewClassifier([]string{"Positive", "positive"}, weights, []float64{0, 0})
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeClassifier(&buf, c); err != nil {
		t.Fatalf("EncodeClassifier error: %v", err)
	}
	_, err = DecodeClassifier(&buf)
	if err == nil || !strings.Contains(err.Error(), "unknown label") {
		t.Fatalf("expected unknown-label error, got %v", err)
	}
}

func TestDecodeClassifier_Garbage(t *testing.T) {
	if _, err := DecodeClassifier(bytes.NewBufferString("not a gob stream")); err == nil {
		t.Fatal("expected error for corrupt artifact")
	}
}

func TestVectorizerArtifact_RoundTrip(t *testing.T) {
	v, err := FitVectorizer([]string{"love this product", "hate this thing"})
	if err != nil {
		t.Fatalf("FitVectorizer error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeVectorizer(&buf, v); err != nil {
		t.Fatalf("EncodeVectorizer error: %v", err)
	}
	got, err := DecodeVectorizer(&buf)
	if err != nil {
		t.Fatalf("DecodeVectorizer error: %v", err)
	}

	a, b := v.Transform("love this"), got.Transform("love this")
	if len(a) != len(b) {
		t.Fatalf("decoded vectorizer disagrees with original")
	}
	for idx, w := range a {
		if b[idx] != w {
			t.Fatalf("weight mismatch at %d: %f != %f", idx, b[idx], w)
		}
	}
}

func TestDecodeVectorizer_Garbage(t *testing.T) {
	if _, err := DecodeVectorizer(bytes.NewBufferString("junk")); err == nil {
		t.Fatal("expected error for corrupt artifact")
	}
}

func TestCanonicalLabel(t *testing.T) {
	tests := map[string]string{
		"positive": "Positive",
		"NEGATIVE": "Negative",
		"NeUtRaL":  "Neutral",
		"Positive": "Positive",
	}
	for in, want := range tests {
		if got := CanonicalLabel(in); got != want {
			t.Fatalf("CanonicalLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsCanonicalLabel(t *testing.T) {
	for _, l := range Labels {
		if !IsCanonicalLabel(l) {
			t.Fatalf("expected %q to be canonical", l)
		}
	}
	for _, l := range []string{"positive", "", "Mixed"} {
		if IsCanonicalLabel(l) {
			t.Fatalf("expected %q to be rejected", l)
		}
	}
}
