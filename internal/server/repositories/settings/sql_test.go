package settings

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

func newRepoWithMock(t *testing.T, d dbx.Dialect) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, d), mock, db
}

const selectQ = `(?s)^SELECT\s+administrator,\s*pending_administrator,\s*asset_id,\s*withdrawal_delay,\s*reward_rate\s+FROM\s+settings\s+WHERE\s+id\s*=\s*1`

var columns = []string{"administrator", "pending_administrator", "asset_id", "withdrawal_delay", "reward_rate"}

func TestGet_ForUpdateOnPostgres(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.Postgres)
	defer db.Close()

	mock.ExpectQuery(selectQ + `\s+FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("admin", "bob", "LOCK", int64(604800), "2536"))

	got, err := repo.Get(context.Background(), true)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	want := staking.Settings{
		Administrator:        "admin",
		PendingAdministrator: "bob",
		AssetID:              "LOCK",
		WithdrawalDelay:      604800,
		RewardRate:           2536,
	}
	if *got != want {
		t.Fatalf("unexpected settings: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGet_NullPendingAndNoLockOnSQLite(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.SQLite)
	defer db.Close()

	mock.ExpectQuery(selectQ + `$`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("admin", nil, "LOCK", int64(0), "0"))

	got, err := repo.Get(context.Background(), true)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.PendingAdministrator != "" {
		t.Fatalf("expected no pending administrator, got %q", got.PendingAdministrator)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.Postgres)
	defer db.Close()

	mock.ExpectQuery(selectQ).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), false)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGet_BadStoredRate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.Postgres)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("admin", nil, "LOCK", int64(0), "-5"))

	_, err := repo.Get(context.Background(), false)
	if err == nil || !regexp.MustCompile(`db error: bad amount`).MatchString(err.Error()) {
		t.Fatalf("expected bad amount error, got %v", err)
	}
}

func TestSave_Upserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.Postgres)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+settings\s*\(id,.*\)\s*VALUES\s*\(1,\s*\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE`
	mock.ExpectExec(q).
		WithArgs("admin", nil, "LOCK", int64(86400), "18446744073709551615").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &staking.Settings{
		Administrator:   "admin",
		AssetID:         "LOCK",
		WithdrawalDelay: 86400,
		RewardRate:      ^uint64(0),
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_SQLitePlaceholders(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.SQLite)
	defer db.Close()

	q := `(?s)VALUES\s*\(1,\s*\?1,\s*\?2,\s*\?3,\s*\?4,\s*\?5\)`
	mock.ExpectExec(q).
		WithArgs("admin", "bob", "LOCK", int64(0), "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &staking.Settings{
		Administrator:        "admin",
		PendingAdministrator: "bob",
		AssetID:              "LOCK",
		RewardRate:           1,
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
}

func TestSave_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t, dbx.Postgres)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO settings`).WillReturnError(errors.New("db down"))

	err := repo.Save(context.Background(), &staking.Settings{Administrator: "admin"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
