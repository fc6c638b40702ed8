package predictions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/reviewpulse/internal/dbx"
	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a prediction record.
func (r *PostgresRepository) Create(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error) {

	query :=
		`INSERT INTO predictions (input_text, predicted_label)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		prediction.InputText, prediction.PredictedLabel).Scan(&prediction.ID, &prediction.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return prediction, nil
}

// List returns all prediction records, newest first. The id tie-break keeps
// the order stable for records created within the same timestamp.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Prediction, error) {
	query :=
		`SELECT id, input_text, predicted_label, created_at FROM predictions
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Prediction
	for rows.Next() {
		p := &models.Prediction{}
		if err := rows.Scan(&p.ID, &p.InputText, &p.PredictedLabel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
