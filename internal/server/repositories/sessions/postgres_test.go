package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+sessions\s*\(id,\s*username,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`

	mock.ExpectExec(q).
		WithArgs("sess-1", "alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), "sess-1", "alice", time.Hour); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+sessions`).
		WithArgs("sess-1", "alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	if err := repo.Create(context.Background(), "sess-1", "alice", time.Hour); err == nil {
		t.Fatal("expected error")
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*username,\s*expires_at,\s*created_at\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "expires_at", "created_at"}).
		AddRow("sess-1", "alice", now.Add(time.Hour), now)
	mock.ExpectQuery(q).
		WithArgs("sess-1").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.UserName != "alice" || got.ID != "sess-1" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Expired(now) {
		t.Fatal("session should not be expired yet")
	}
	if !got.Expired(now.Add(2 * time.Hour)) {
		t.Fatal("session should be expired after its TTL")
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,\s*username`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "sess-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
