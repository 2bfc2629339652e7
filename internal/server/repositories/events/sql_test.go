package events

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/server/models"
	"github.com/google/uuid"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

func TestAppend_SetsSeq(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+events\s*\(id,\s*name,\s*actor,\s*ledger_time,\s*payload\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+seq$`).
		WithArgs(id.String(), "staked", "alice", int64(100), `{"amount":"5"}`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(17)))

	e := &models.Event{ID: id, Name: "staked", Actor: "alice", LedgerTime: 100, Payload: []byte(`{"amount":"5"}`)}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if e.Seq != 17 {
		t.Fatalf("want seq 17, got %d", e.Seq)
	}
}

func TestAppend_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+events`).WillReturnError(errors.New("db down"))

	err := repo.Append(context.Background(), &models.Event{ID: uuid.New()})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListUnarchived(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a, b := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"seq", "id", "name", "actor", "ledger_time", "payload"}).
		AddRow(int64(1), a.String(), "staked", "alice", int64(10), `{}`).
		AddRow(int64(2), b.String(), "withdrawn", "bob", int64(20), `{"x":1}`)
	mock.ExpectQuery(`(?s)^SELECT\s+seq,.*FROM\s+events\s+WHERE\s+archived_at\s+IS\s+NULL\s+ORDER\s+BY\s+seq\s+LIMIT\s+\$1$`).
		WithArgs(100).
		WillReturnRows(rows)

	got, err := repo.ListUnarchived(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListUnarchived error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 events, got %d", len(got))
	}
	if got[0].ID != a || got[1].Name != "withdrawn" || got[1].LedgerTime != 20 || string(got[1].Payload) != `{"x":1}` {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestListUnarchived_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"seq", "id", "name", "actor", "ledger_time", "payload"}).
		AddRow(int64(1), "not-a-uuid", "staked", "alice", int64(10), `{}`)
	mock.ExpectQuery(`FROM\s+events`).WillReturnRows(rows)

	if _, err := repo.ListUnarchived(context.Background(), 10); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestMarkArchived(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+events\s+SET\s+archived_at\s*=\s*\$1\s+WHERE\s+seq\s+BETWEEN\s+\$2\s+AND\s+\$3\s+AND\s+archived_at\s+IS\s+NULL$`).
		WithArgs(sqlmock.AnyArg(), int64(5), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.MarkArchived(context.Background(), 5, 9, time.Now())
	if err != nil {
		t.Fatalf("MarkArchived error: %v", err)
	}
	if n != 5 {
		t.Fatalf("want 5 rows, got %d", n)
	}
}
