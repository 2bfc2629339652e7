// Package positions persists per-user stake positions keyed by identity.
package positions

import (
	"context"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

type Repository interface {
	// Get returns common.ErrorNotFound for a user that never staked.
	Get(ctx context.Context, owner accounts.Identity, forUpdate bool) (*staking.Position, error)
	Save(ctx context.Context, p *staking.Position) error
	// CountStakers counts positions with a non-zero active stake.
	CountStakers(ctx context.Context) (int64, error)
}
