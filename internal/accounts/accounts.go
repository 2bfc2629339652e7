// Package accounts derives the deterministic host-ledger addresses used by
// the staking ledger and the capabilities allowed to debit them.
//
// Every address is base58(blake2b-256(seed...)). A user owns a wallet (the
// source of stakes and destination of withdrawals) and an escrow that holds
// the user's active and pending principal. The protocol owns a single
// treasury that holds funded rewards.
package accounts

import (
	"errors"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// Identity is an authenticated principal: a user or the administrator.
type Identity string

// Address is a host-ledger account address.
type Address string

const (
	seedWallet   = "wallet"
	seedEscrow   = "user_info"
	seedTreasury = "settings"
)

// ErrInvalidAddress is returned by Parse for malformed addresses.
var ErrInvalidAddress = errors.New("invalid address")

func derive(seeds ...string) Address {
	// seeds are length-prefixed so ("ab","c") and ("a","bc") differ
	var b strings.Builder
	for _, s := range seeds {
		b.WriteByte(byte(len(s)))
		b.WriteString(s)
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return Address(base58.Encode(sum[:]))
}

// Wallet is the identity's own spendable account.
func Wallet(id Identity) Address { return derive(seedWallet, string(id)) }

// Escrow is the per-user account holding staked and pending principal.
func Escrow(id Identity) Address { return derive(seedEscrow, string(id)) }

// Treasury is the protocol reward reserve.
func Treasury() Address { return derive(seedTreasury) }

// Parse validates the textual form of an address.
func Parse(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != blake2b.Size256 {
		return "", ErrInvalidAddress
	}
	return Address(s), nil
}

// Kind tags the capability an Authority carries.
type Kind uint8

const (
	KindUser Kind = iota + 1
	KindEscrow
	KindTreasury
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindEscrow:
		return "escrow"
	case KindTreasury:
		return "treasury"
	default:
		return "unknown"
	}
}

// Authority is the authorisation context handed to the host ledger with a
// transfer: acting as a user, as a user's escrow, or as the treasury.
type Authority struct {
	Kind  Kind
	Owner Identity
}

// AsUser signs for the user's wallet.
func AsUser(id Identity) Authority { return Authority{Kind: KindUser, Owner: id} }

// AsEscrow signs for the user's escrow; only the ledger itself holds it.
func AsEscrow(id Identity) Authority { return Authority{Kind: KindEscrow, Owner: id} }

// AsTreasury signs for the protocol treasury.
func AsTreasury() Authority { return Authority{Kind: KindTreasury} }

// Account returns the address this authority may debit.
func (a Authority) Account() Address {
	switch a.Kind {
	case KindUser:
		return Wallet(a.Owner)
	case KindEscrow:
		return Escrow(a.Owner)
	case KindTreasury:
		return Treasury()
	default:
		return ""
	}
}

// Controls reports whether the authority may debit addr.
func (a Authority) Controls(addr Address) bool {
	acc := a.Account()
	return acc != "" && acc == addr
}

func (a Authority) String() string {
	if a.Kind == KindTreasury {
		return a.Kind.String()
	}
	return a.Kind.String() + ":" + string(a.Owner)
}
