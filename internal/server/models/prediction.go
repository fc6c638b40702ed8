package models

import "time"

// Prediction is one stored classification result. Records are immutable
// and never deleted.
type Prediction struct {
	ID             int64
	InputText      string
	PredictedLabel string
	CreatedAt      time.Time
}
