// Package users provides the repository for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUserName(ctx context.Context, userName string) (*models.User, error)
	Exists(ctx context.Context, userName string, email string) (bool, error)
}
