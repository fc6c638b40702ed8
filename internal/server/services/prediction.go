package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/sentiment"
	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
	predictionsrepo "github.com/dmitrijs2005/reviewpulse/internal/server/repositories/predictions"
)

// SentimentPredictor is the classification dependency of the prediction
// workflow. *sentiment.Predictor satisfies it; tests use a stub.
type SentimentPredictor interface {
	Predict(text string) (string, error)
	Labels() []string
}

// PredictResult is the outcome of one prediction request. Stored is false
// when the record could not be persisted; the label is still valid.
type PredictResult struct {
	Label  string
	Stored bool
}

// PredictionService classifies input text and keeps the prediction history.
type PredictionService struct {
	predictor SentimentPredictor
	repo      predictionsrepo.Repository
	logger    logging.Logger
}

func NewPredictionService(predictor SentimentPredictor, repo predictionsrepo.Repository, logger logging.Logger) *PredictionService {
	return &PredictionService{predictor: predictor, repo: repo, logger: logger}
}

// Predict classifies text and appends a prediction record. Empty or
// whitespace-only input yields ErrorValidation with no storage side effect.
// A persistence failure is logged and absorbed: the caller still gets the
// label, with Stored=false.
func (s *PredictionService) Predict(ctx context.Context, text string) (*PredictResult, error) {

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, common.ErrorValidation
	}

	label, err := s.predictor.Predict(trimmed)
	if err != nil {
		s.logger.Error(ctx, "prediction failed", "error", err)
		return nil, common.ErrorInternal
	}

	result := &PredictResult{Label: label, Stored: true}

	_, err = s.repo.Create(ctx, &models.Prediction{InputText: trimmed, PredictedLabel: label})
	if err != nil {
		s.logger.Error(ctx, "failed to store prediction", "error", err, "label", label)
		result.Stored = false
	}

	return result, nil
}

// History returns all prediction records newest-first together with counts
// per canonical label. Records with a non-canonical label stay in the
// listing but are excluded from the count map.
func (s *PredictionService) History(ctx context.Context) ([]*models.Prediction, map[string]int, error) {

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	counts := make(map[string]int, len(sentiment.Labels))
	for _, label := range sentiment.Labels {
		counts[label] = 0
	}
	for _, r := range records {
		if _, ok := counts[r.PredictedLabel]; ok {
			counts[r.PredictedLabel]++
		}
	}

	return records, counts, nil
}
