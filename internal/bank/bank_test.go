package bank

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asset = "LOCK"

func balance(t *testing.T, b *Bank, addr accounts.Address) uint64 {
	t.Helper()
	v, err := b.Balance(context.Background(), addr, asset)
	require.NoError(t, err)
	return v
}

func TestTransfer_MovesFunds(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	alice := accounts.Identity("alice")

	_, err := b.Mint(ctx, accounts.Wallet(alice), asset, 100)
	require.NoError(t, err)

	err = b.Transfer(ctx, Transfer{
		From: accounts.Wallet(alice), To: accounts.Escrow(alice),
		Authority: accounts.AsUser(alice), Asset: asset, Amount: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(60), balance(t, b, accounts.Wallet(alice)))
	assert.Equal(t, uint64(40), balance(t, b, accounts.Escrow(alice)))
}

func TestTransfer_Rejections(t *testing.T) {
	ctx := context.Background()
	alice := accounts.Identity("alice")

	tests := []struct {
		name string
		tr   Transfer
		want error
	}{
		{"zero amount", Transfer{From: accounts.Wallet(alice), To: accounts.Escrow(alice), Authority: accounts.AsUser(alice), Asset: asset}, ErrInvalidTransfer},
		{"self transfer", Transfer{From: accounts.Wallet(alice), To: accounts.Wallet(alice), Authority: accounts.AsUser(alice), Asset: asset, Amount: 1}, ErrInvalidTransfer},
		{"missing asset", Transfer{From: accounts.Wallet(alice), To: accounts.Escrow(alice), Authority: accounts.AsUser(alice), Amount: 1}, ErrInvalidTransfer},
		{"wrong authority", Transfer{From: accounts.Escrow(alice), To: accounts.Wallet(alice), Authority: accounts.AsUser(alice), Asset: asset, Amount: 1}, ErrUnauthorizedTransfer},
		{"insufficient", Transfer{From: accounts.Wallet(alice), To: accounts.Escrow(alice), Authority: accounts.AsUser(alice), Asset: asset, Amount: 11}, ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMemory()
			_, err := b.Mint(ctx, accounts.Wallet(alice), asset, 10)
			require.NoError(t, err)

			err = b.Transfer(ctx, tt.tr)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, uint64(10), balance(t, b, accounts.Wallet(alice)))
		})
	}
}

func TestTransfer_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	alice := accounts.Identity("alice")

	_, err := b.Mint(ctx, accounts.Escrow(alice), asset, 50)
	require.NoError(t, err)
	_, err = b.Mint(ctx, accounts.Treasury(), asset, 5)
	require.NoError(t, err)

	err = b.Transfer(ctx,
		Transfer{From: accounts.Escrow(alice), To: accounts.Wallet(alice), Authority: accounts.AsEscrow(alice), Asset: asset, Amount: 50},
		Transfer{From: accounts.Treasury(), To: accounts.Wallet(alice), Authority: accounts.AsTreasury(), Asset: asset, Amount: 10},
	)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, uint64(50), balance(t, b, accounts.Escrow(alice)))
	assert.Equal(t, uint64(5), balance(t, b, accounts.Treasury()))
	assert.Zero(t, balance(t, b, accounts.Wallet(alice)))
}

func TestTransfer_BatchSeesEarlierLegs(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	alice := accounts.Identity("alice")

	_, err := b.Mint(ctx, accounts.Wallet(alice), asset, 10)
	require.NoError(t, err)

	// the second leg spends what the first leg credited
	err = b.Transfer(ctx,
		Transfer{From: accounts.Wallet(alice), To: accounts.Escrow(alice), Authority: accounts.AsUser(alice), Asset: asset, Amount: 10},
		Transfer{From: accounts.Escrow(alice), To: accounts.Treasury(), Authority: accounts.AsEscrow(alice), Asset: asset, Amount: 10},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance(t, b, accounts.Treasury()))
}

func TestMint(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	_, err := b.Mint(ctx, accounts.Treasury(), asset, 0)
	assert.ErrorIs(t, err, ErrInvalidTransfer)

	_, err = b.Mint(ctx, accounts.Treasury(), asset, math.MaxUint64)
	require.NoError(t, err)
	_, err = b.Mint(ctx, accounts.Treasury(), asset, 1)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

type failingStore struct {
	*MemoryStore
	putErr error
}

func (f *failingStore) Put(ctx context.Context, addr accounts.Address, asset string, amount uint64) error {
	return f.putErr
}

func TestTransfer_StoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore(), putErr: errors.New("disk full")}
	require.NoError(t, store.MemoryStore.Put(ctx, accounts.Wallet("alice"), asset, 10))

	b := New(store)
	err := b.Transfer(ctx, Transfer{
		From: accounts.Wallet("alice"), To: accounts.Escrow("alice"),
		Authority: accounts.AsUser("alice"), Asset: asset, Amount: 1,
	})
	assert.EqualError(t, err, "disk full")
}
