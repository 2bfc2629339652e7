package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, addr accounts.Address, asset string) (uint64, error) {
	query :=
		`SELECT amount FROM balances
		 WHERE address = $1 AND asset_id = $2` + r.dialect.ForUpdate()

	var amount string
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), string(addr), asset).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	v, err := dbx.ParseAmount(amount)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *SQLRepository) Put(ctx context.Context, addr accounts.Address, asset string, amount uint64) error {
	query :=
		`INSERT INTO balances (address, asset_id, amount)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (address, asset_id) DO UPDATE SET amount = excluded.amount`

	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), string(addr), asset, dbx.Amount(amount)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
