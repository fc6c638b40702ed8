// Package repomanager wires the per-table repositories to one database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/predictions"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Predictions() predictions.Repository
	Sessions() sessions.Repository
	Close() error
}
