package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/reviewpulse/internal/server/migrations"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/predictions"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db          *sql.DB
	users       users.Repository
	predictions predictions.Repository
	sessions    sessions.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Predictions() predictions.Repository {
	return m.predictions
}

func (m *PostgresRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresRepositoryManager opens the database, builds the repositories
// and applies pending migrations. Any failure here is a startup failure.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		users:       users.NewPostgresRepository(db),
		predictions: predictions.NewPostgresRepository(db),
		sessions:    sessions.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
