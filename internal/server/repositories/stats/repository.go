// Package stats persists the global reward accumulator singleton.
package stats

import (
	"context"

	"github.com/dmitrijs2005/lockstake/internal/staking"
)

type Repository interface {
	// Get returns common.ErrorNotFound before the ledger is initialized.
	Get(ctx context.Context, forUpdate bool) (*staking.Stats, error)
	Save(ctx context.Context, s *staking.Stats) error
}
