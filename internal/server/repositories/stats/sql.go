package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLRepository) Get(ctx context.Context, forUpdate bool) (*staking.Stats, error) {
	query :=
		`SELECT reward_per_token_stored, last_update_time, total_staked, total_reward_promised, total_reward_provided
		 FROM stats
		 WHERE id = 1`
	if forUpdate {
		query += r.dialect.ForUpdate()
	}

	var (
		index, staked, promised, provided string
		last                              int64
		s                                 staking.Stats
	)
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query)).Scan(&index, &last, &staked, &promised, &provided)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	err = dbx.ParseAmounts(
		index, &s.RewardPerTokenStored,
		staked, &s.TotalStaked,
		promised, &s.TotalRewardPromised,
		provided, &s.TotalRewardProvided,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if s.LastUpdateTime, err = dbx.Seconds(last); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *SQLRepository) Save(ctx context.Context, s *staking.Stats) error {
	query :=
		`INSERT INTO stats (id, reward_per_token_stored, last_update_time, total_staked, total_reward_promised, total_reward_provided)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   reward_per_token_stored = excluded.reward_per_token_stored,
		   last_update_time = excluded.last_update_time,
		   total_staked = excluded.total_staked,
		   total_reward_promised = excluded.total_reward_promised,
		   total_reward_provided = excluded.total_reward_provided`

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		dbx.Amount(s.RewardPerTokenStored),
		int64(s.LastUpdateTime),
		dbx.Amount(s.TotalStaked),
		dbx.Amount(s.TotalRewardPromised),
		dbx.Amount(s.TotalRewardProvided),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
