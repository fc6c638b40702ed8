package trainer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/sentiment"
)

// Options controls the training run. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	TestFraction float64
	Seed         int64
	Epochs       int
	LearningRate float64
}

func DefaultOptions() Options {
	return Options{
		TestFraction: 0.2,
		Seed:         42,
		Epochs:       300,
		LearningRate: 0.5,
	}
}

// Result carries the fitted artifacts and the held-out evaluation.
type Result struct {
	Vectorizer *sentiment.Vectorizer
	Classifier *sentiment.Classifier
	Accuracy   float64
	TrainSize  int
	TestSize   int
}

// Split shuffles samples with the given seed and splits off testFraction of
// them (rounded up) as the test set. The same seed always produces the same
// split.
func Split(samples []Sample, testFraction float64, seed int64) (train, test []Sample) {
	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(math.Ceil(float64(len(shuffled)) * testFraction))
	if nTest > len(shuffled) {
		nTest = len(shuffled)
	}
	return shuffled[nTest:], shuffled[:nTest]
}

// Train normalizes labels, splits the corpus, fits the vectorizer on the
// training split only, trains a softmax-regression classifier by batch
// gradient descent, and evaluates accuracy on the held-out split. Artifact
// production is never gated on the accuracy value.
func Train(ctx context.Context, samples []Sample, opts Options, log logging.Logger) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty corpus")
	}

	normalized := make([]Sample, len(samples))
	for i, s := range samples {
		normalized[i] = Sample{Review: s.Review, Sentiment: sentiment.CanonicalLabel(s.Sentiment)}
	}

	train, test := Split(normalized, opts.TestFraction, opts.Seed)
	if len(train) == 0 {
		return nil, fmt.Errorf("empty training split (%d samples, test fraction %.2f)", len(samples), opts.TestFraction)
	}
	log.Info(ctx, "corpus split", "train", len(train), "test", len(test))

	trainDocs := make([]string, len(train))
	for i, s := range train {
		trainDocs[i] = s.Review
	}

	// Test text is transformed with the fitted state only, never used to
	// fit the vocabulary.
	vectorizer, err := sentiment.FitVectorizer(trainDocs)
	if err != nil {
		return nil, fmt.Errorf("fitting vectorizer: %w", err)
	}

	classes := classLabels(train)
	if len(classes) < 2 {
		return nil, fmt.Errorf("training split contains %d distinct labels, need at least 2", len(classes))
	}
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	xs := make([]sentiment.SparseVector, len(train))
	ys := make([]int, len(train))
	for i, s := range train {
		xs[i] = vectorizer.Transform(s.Review)
		ys[i] = classIndex[s.Sentiment]
	}

	classifier, err := fit(classes, vectorizer.NumFeatures(), xs, ys, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Vectorizer: vectorizer,
		Classifier: classifier,
		TrainSize:  len(train),
		TestSize:   len(test),
	}

	if len(test) == 0 {
		log.Warn(ctx, "test split is empty, skipping evaluation")
		return result, nil
	}

	correct := 0
	for _, s := range test {
		if classifier.Predict(vectorizer.Transform(s.Review)) == s.Sentiment {
			correct++
		}
	}
	result.Accuracy = float64(correct) / float64(len(test))
	log.Info(ctx, "evaluated on held-out split", "accuracy", fmt.Sprintf("%.2f", result.Accuracy))

	return result, nil
}

// classLabels returns the sorted distinct labels of the training split.
func classLabels(train []Sample) []string {
	set := make(map[string]struct{})
	for _, s := range train {
		set[s.Sentiment] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for c := range set {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// fit trains multinomial logistic regression with full-batch gradient
// descent over the sparse TF-IDF rows.
func fit(classes []string, numFeatures int, xs []sentiment.SparseVector, ys []int, opts Options) (*sentiment.Classifier, error) {
	k := len(classes)
	n := len(xs)

	weights := mat.NewDense(k, numFeatures, nil)
	intercepts := make([]float64, k)

	grad := mat.NewDense(k, numFeatures, nil)
	gradB := make([]float64, k)
	scores := make([]float64, k)

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		grad.Zero()
		for c := range gradB {
			gradB[c] = 0
		}

		for i, x := range xs {
			copy(scores, intercepts)
			for j, v := range x {
				for c := 0; c < k; c++ {
					scores[c] += weights.At(c, j) * v
				}
			}
			softmax(scores)

			for c := 0; c < k; c++ {
				diff := scores[c]
				if c == ys[i] {
					diff -= 1
				}
				gradB[c] += diff
				for j, v := range x {
					grad.Set(c, j, grad.At(c, j)+diff*v)
				}
			}
		}

		step := opts.LearningRate / float64(n)
		grad.Scale(step, grad)
		weights.Sub(weights, grad)
		for c := 0; c < k; c++ {
			intercepts[c] -= step * gradB[c]
		}
	}

	return sentiment.NewClassifier(classes, weights, intercepts)
}

// softmax converts scores to probabilities in place.
func softmax(scores []float64) {
	max := floats.Max(scores)
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
	}
	sum := floats.Sum(scores)
	for i := range scores {
		scores[i] /= sum
	}
}
