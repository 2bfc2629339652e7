package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, forUpdate bool) (*staking.Settings, error) {
	query :=
		`SELECT administrator, pending_administrator, asset_id, withdrawal_delay, reward_rate
		 FROM settings
		 WHERE id = 1`
	if forUpdate {
		query += r.dialect.ForUpdate()
	}

	var (
		admin   string
		pending sql.NullString
		delay   int64
		rate    string
		s       staking.Settings
	)
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query)).Scan(&admin, &pending, &s.AssetID, &delay, &rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.Administrator = accounts.Identity(admin)
	s.PendingAdministrator = accounts.Identity(pending.String)
	if s.WithdrawalDelay, err = dbx.Seconds(delay); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if s.RewardRate, err = dbx.ParseAmount(rate); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *SQLRepository) Save(ctx context.Context, s *staking.Settings) error {
	query :=
		`INSERT INTO settings (id, administrator, pending_administrator, asset_id, withdrawal_delay, reward_rate)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   administrator = excluded.administrator,
		   pending_administrator = excluded.pending_administrator,
		   asset_id = excluded.asset_id,
		   withdrawal_delay = excluded.withdrawal_delay,
		   reward_rate = excluded.reward_rate`

	pending := sql.NullString{String: string(s.PendingAdministrator), Valid: s.PendingAdministrator != ""}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		string(s.Administrator), pending, s.AssetID, int64(s.WithdrawalDelay), dbx.Amount(s.RewardRate))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
