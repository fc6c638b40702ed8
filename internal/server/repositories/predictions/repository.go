// Package predictions provides the repository for stored prediction
// records.
package predictions

import (
	"context"

	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error)
	List(ctx context.Context) ([]*models.Prediction, error)
}
