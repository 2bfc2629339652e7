package positions

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

func (r *SQLRepository) Get(ctx context.Context, owner accounts.Identity, forUpdate bool) (*staking.Position, error) {
	query :=
		`SELECT stake_amount, staked_at, reward_per_token_paid, captured_reward,
		        withdrawal_request_time, withdrawal_request_amount, withdrawal_request_reward_amount
		 FROM positions
		 WHERE owner = $1`
	if forUpdate {
		query += r.dialect.ForUpdate()
	}

	var (
		stake, paid, captured, reqAmount, reqReward string
		stakedAt, reqTime                           int64
	)
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), string(owner)).
		Scan(&stake, &stakedAt, &paid, &captured, &reqTime, &reqAmount, &reqReward)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p := &staking.Position{Owner: owner}
	err = dbx.ParseAmounts(
		stake, &p.StakeAmount,
		paid, &p.RewardPerTokenPaid,
		captured, &p.CapturedReward,
		reqAmount, &p.WithdrawalRequestAmount,
		reqReward, &p.WithdrawalRequestRewardAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if p.StakedAt, err = dbx.Seconds(stakedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if p.WithdrawalRequestTime, err = dbx.Seconds(reqTime); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) Save(ctx context.Context, p *staking.Position) error {
	if p.Owner == "" {
		return fmt.Errorf("save position: %w", staking.ErrInvalidIdentity)
	}

	query :=
		`INSERT INTO positions (owner, stake_amount, staked_at, reward_per_token_paid, captured_reward,
		                        withdrawal_request_time, withdrawal_request_amount, withdrawal_request_reward_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (owner) DO UPDATE SET
		   stake_amount = excluded.stake_amount,
		   staked_at = excluded.staked_at,
		   reward_per_token_paid = excluded.reward_per_token_paid,
		   captured_reward = excluded.captured_reward,
		   withdrawal_request_time = excluded.withdrawal_request_time,
		   withdrawal_request_amount = excluded.withdrawal_request_amount,
		   withdrawal_request_reward_amount = excluded.withdrawal_request_reward_amount,
		   updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		string(p.Owner),
		dbx.Amount(p.StakeAmount),
		int64(p.StakedAt),
		dbx.Amount(p.RewardPerTokenPaid),
		dbx.Amount(p.CapturedReward),
		int64(p.WithdrawalRequestTime),
		dbx.Amount(p.WithdrawalRequestAmount),
		dbx.Amount(p.WithdrawalRequestRewardAmount),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) CountStakers(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM positions WHERE stake_amount <> '0'`

	var n int64
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query)).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
