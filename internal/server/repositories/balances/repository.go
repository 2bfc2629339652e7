// Package balances persists host-ledger account balances. A Repository is a
// bank.Store, so a bank.Bank over it moves funds inside the caller's
// transaction.
package balances

import (
	"context"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
)

type Repository interface {
	// Get returns zero for an account that was never credited.
	Get(ctx context.Context, addr accounts.Address, asset string) (uint64, error)
	Put(ctx context.Context, addr accounts.Address, asset string, amount uint64) error
}
