package balances

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/bank"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

var _ bank.Store = (*SQLRepository)(nil)

const selectQ = `(?s)^SELECT\s+amount\s+FROM\s+balances\s+WHERE\s+address\s*=\s*\$1\s+AND\s+asset_id\s*=\s*\$2\s+FOR UPDATE$`

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	addr := accounts.Wallet("alice")
	mock.ExpectQuery(selectQ).
		WithArgs(string(addr), "LOCK").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("42"))

	got, err := repo.Get(context.Background(), addr, "LOCK")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != 42 {
		t.Fatalf("want 42, got %d", got)
	}
}

func TestGet_UnknownAccountIsZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), accounts.Treasury(), "LOCK")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != 0 {
		t.Fatalf("want 0, got %d", got)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), accounts.Treasury(), "LOCK")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPut(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	addr := accounts.Escrow("alice")
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+balances\s*\(address,\s*asset_id,\s*amount\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT`).
		WithArgs(string(addr), "LOCK", "7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Put(context.Background(), addr, "LOCK", 7); err != nil {
		t.Fatalf("Put error: %v", err)
	}
}

func TestBankOverRepository_TransfersInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	from, to := accounts.Wallet("alice"), accounts.Escrow("alice")

	mock.ExpectBegin()
	mock.ExpectQuery(selectQ).WithArgs(string(from), "LOCK").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("10"))
	mock.ExpectQuery(selectQ).WithArgs(string(to), "LOCK").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT\s+INTO\s+balances`).WithArgs(string(from), "LOCK", "6").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+balances`).WithArgs(string(to), "LOCK", "4").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		b := bank.New(NewSQLRepository(tx, dbx.Postgres))
		return b.Transfer(ctx, bank.Transfer{
			From:      from,
			To:        to,
			Authority: accounts.AsUser("alice"),
			Asset:     "LOCK",
			Amount:    4,
		})
	})
	if err != nil {
		t.Fatalf("transfer error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
