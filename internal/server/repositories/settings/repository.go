// Package settings persists the protocol configuration singleton.
package settings

import (
	"context"

	"github.com/dmitrijs2005/lockstake/internal/staking"
)

type Repository interface {
	// Get returns common.ErrorNotFound before the ledger is initialized.
	// forUpdate locks the row for the rest of the transaction.
	Get(ctx context.Context, forUpdate bool) (*staking.Settings, error)
	Save(ctx context.Context, s *staking.Settings) error
}
