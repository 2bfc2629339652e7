package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivation_IsDeterministicAndDistinct(t *testing.T) {
	alice := Identity("alice")
	bob := Identity("bob")

	assert.Equal(t, Wallet(alice), Wallet(alice))
	assert.Equal(t, Escrow(alice), Escrow(alice))
	assert.Equal(t, Treasury(), Treasury())

	assert.NotEqual(t, Wallet(alice), Wallet(bob))
	assert.NotEqual(t, Wallet(alice), Escrow(alice))
	assert.NotEqual(t, Escrow(alice), Treasury())
}

func TestDerivation_SeedsAreLengthPrefixed(t *testing.T) {
	assert.NotEqual(t, derive("ab", "c"), derive("a", "bc"))
}

func TestParse(t *testing.T) {
	addr := Wallet("alice")
	got, err := Parse(string(addr))
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	_, err = Parse("not-base58-0OIl")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Parse("3mJr7AoUXx2Wqd")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAuthority_Controls(t *testing.T) {
	alice := Identity("alice")

	tests := []struct {
		name string
		auth Authority
		addr Address
		want bool
	}{
		{"user owns wallet", AsUser(alice), Wallet(alice), true},
		{"user cannot debit escrow", AsUser(alice), Escrow(alice), false},
		{"escrow owns escrow", AsEscrow(alice), Escrow(alice), true},
		{"escrow of other user", AsEscrow("bob"), Escrow(alice), false},
		{"treasury owns treasury", AsTreasury(), Treasury(), true},
		{"treasury cannot debit wallets", AsTreasury(), Wallet(alice), false},
		{"zero authority", Authority{}, Wallet(alice), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.auth.Controls(tt.addr))
		})
	}
}

func TestAuthority_String(t *testing.T) {
	assert.Equal(t, "user:alice", AsUser("alice").String())
	assert.Equal(t, "escrow:alice", AsEscrow("alice").String())
	assert.Equal(t, "treasury", AsTreasury().String())
}
