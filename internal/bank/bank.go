// Package bank is the host ledger that moves fungible-asset balances
// between accounts. The staking engine only decides how much is owed and
// when; every actual movement goes through a Ledger.
package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnauthorizedTransfer = errors.New("authority cannot debit source account")
	ErrInvalidTransfer      = errors.New("invalid transfer")
)

// Transfer moves Amount of Asset from From to To, authorised by Authority.
type Transfer struct {
	From      accounts.Address
	To        accounts.Address
	Authority accounts.Authority
	Asset     string
	Amount    uint64
}

// Ledger applies transfers. A call either applies every transfer of the
// batch or none of them.
type Ledger interface {
	Transfer(ctx context.Context, transfers ...Transfer) error
	Balance(ctx context.Context, addr accounts.Address, asset string) (uint64, error)
}

// Store persists balances. Get returns zero for unknown accounts.
type Store interface {
	Get(ctx context.Context, addr accounts.Address, asset string) (uint64, error)
	Put(ctx context.Context, addr accounts.Address, asset string, amount uint64) error
}

// Bank implements Ledger over a Store.
type Bank struct {
	store Store
}

func New(store Store) *Bank {
	return &Bank{store: store}
}

type key struct {
	addr  accounts.Address
	asset string
}

// Transfer validates the whole batch against a working copy of the touched
// balances and writes the results only when every transfer succeeded.
func (b *Bank) Transfer(ctx context.Context, transfers ...Transfer) error {
	working := make(map[key]uint64)
	order := make([]key, 0, 2*len(transfers))

	load := func(k key) (uint64, error) {
		if v, ok := working[k]; ok {
			return v, nil
		}
		v, err := b.store.Get(ctx, k.addr, k.asset)
		if err != nil {
			return 0, err
		}
		working[k] = v
		order = append(order, k)
		return v, nil
	}

	for i, t := range transfers {
		if t.Amount == 0 || t.From == t.To || t.Asset == "" {
			return fmt.Errorf("transfer %d: %w", i, ErrInvalidTransfer)
		}
		if !t.Authority.Controls(t.From) {
			return fmt.Errorf("transfer %d (%s): %w", i, t.Authority, ErrUnauthorizedTransfer)
		}

		from := key{t.From, t.Asset}
		to := key{t.To, t.Asset}

		fromBal, err := load(from)
		if err != nil {
			return err
		}
		if fromBal < t.Amount {
			return fmt.Errorf("transfer %d: %w", i, ErrInsufficientFunds)
		}
		toBal, err := load(to)
		if err != nil {
			return err
		}
		credited, err := fixedpoint.Add(toBal, t.Amount)
		if err != nil {
			return fmt.Errorf("transfer %d: %w", i, err)
		}

		working[from] = fromBal - t.Amount
		working[to] = credited
	}

	for _, k := range order {
		if err := b.store.Put(ctx, k.addr, k.asset, working[k]); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns the balance of addr in asset.
func (b *Bank) Balance(ctx context.Context, addr accounts.Address, asset string) (uint64, error) {
	return b.store.Get(ctx, addr, asset)
}

// Mint credits amount to addr out of thin air. It models funding from
// outside the host ledger and is exposed only to the administrator.
func (b *Bank) Mint(ctx context.Context, addr accounts.Address, asset string, amount uint64) (uint64, error) {
	if amount == 0 || asset == "" {
		return 0, ErrInvalidTransfer
	}
	bal, err := b.store.Get(ctx, addr, asset)
	if err != nil {
		return 0, err
	}
	bal, err = fixedpoint.Add(bal, amount)
	if err != nil {
		return 0, err
	}
	if err := b.store.Put(ctx, addr, asset, bal); err != nil {
		return 0, err
	}
	return bal, nil
}
