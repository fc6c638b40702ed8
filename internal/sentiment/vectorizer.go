// Package sentiment implements the text-classification core: a TF-IDF
// vectorizer, a linear classifier over the vectorized features, a binary
// artifact codec for both, and the read-only Predictor the server uses
// at request time.
package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// SparseVector is a feature-index -> weight map. Indices refer to the
// vocabulary of the vectorizer that produced the vector.
type SparseVector map[int]float64

// tokenPattern matches word tokens of length >= 2, the same convention the
// training corpus was vectorized with. Tokenization must stay identical
// between fit time and inference time.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Vectorizer maps raw text to an L2-normalized TF-IDF vector using a
// vocabulary and document frequencies fixed at fit time. A fitted
// Vectorizer is immutable and safe for concurrent use.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// FitVectorizer learns a vocabulary and smoothed inverse document
// frequencies from the given documents. The vocabulary is ordered
// lexicographically so that fitting the same corpus always produces the
// same feature indices.
func FitVectorizer(docs []string) (*Vectorizer, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		return nil, fmt.Errorf("empty vocabulary: no tokens in %d documents", len(docs))
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocabulary[term] = i
		// smoothed idf, as if one extra document contained every term
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Vectorizer{vocabulary: vocabulary, idf: idf}, nil
}

// NumFeatures returns the dimensionality of vectors produced by Transform.
func (v *Vectorizer) NumFeatures() int {
	return len(v.idf)
}

// Transform maps text to a sparse TF-IDF vector using only the fitted
// vocabulary. Tokens outside the vocabulary are ignored; text with no known
// tokens yields an empty (zero) vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	vec := make(SparseVector, len(counts))
	var norm float64
	for idx, count := range counts {
		w := float64(count) * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}
