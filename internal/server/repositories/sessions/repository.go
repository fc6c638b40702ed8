// Package sessions provides a PostgreSQL-backed store for login sessions.
// It is the explicit session store behind the auth gate: Create/Find/Delete
// correspond to set/get/clear on the session id.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, id string, userName string, validity time.Duration) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
