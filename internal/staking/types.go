// Package staking is the reward-accrual and withdrawal-escrow engine of the
// ledger.
//
// A single reward-per-token index folds the whole rate history into one
// monotonically increasing number. Every mutating operation first advances
// the index to "now" (Stats.Update), then settles the acting user's position
// against it (Position.Settle), and only then applies its own effect. All
// quantities are uint64; rates and indexes are scaled by
// fixedpoint.Precision and every product is floored.
//
// The engine is a serial state machine: callers hand it the protocol
// singletons and one user's position by pointer and must not run two
// operations against the same state concurrently.
package staking

import (
	"github.com/dmitrijs2005/lockstake/internal/accounts"
)

// MaxWithdrawalDelayDays bounds the configurable withdrawal delay.
const MaxWithdrawalDelayDays = 31

// Settings is the protocol configuration singleton.
type Settings struct {
	Administrator accounts.Identity
	// PendingAdministrator is empty when no ownership transfer is in flight.
	PendingAdministrator accounts.Identity
	AssetID              string
	// WithdrawalDelay is in seconds.
	WithdrawalDelay uint32
	// RewardRate is the per-second per-token reward, scaled by Precision.
	RewardRate uint64
}

func (s Settings) authorize(caller accounts.Identity) error {
	if caller == "" || caller != s.Administrator {
		return ErrUnauthorized
	}
	return nil
}

// Stats is the global reward accumulator singleton.
type Stats struct {
	// RewardPerTokenStored never decreases.
	RewardPerTokenStored uint64
	LastUpdateTime       uint32
	// TotalStaked equals the sum of every position's StakeAmount.
	TotalStaked uint64
	// TotalRewardPromised is the reward accrued to all stakers so far.
	TotalRewardPromised uint64
	// TotalRewardProvided is the reward funded by the administrator so far.
	TotalRewardProvided uint64
}

// State bundles the two protocol singletons threaded through every call.
type State struct {
	Settings Settings
	Stats    Stats
}

// Initialized reports whether Initialize has run.
func (s *State) Initialized() bool {
	return s.Settings.Administrator != ""
}

// Position is one user's stake and pending withdrawal. A zero Position is
// the state of a user that never staked.
type Position struct {
	// Owner is empty until the first stake.
	Owner       accounts.Identity
	StakeAmount uint64
	// StakedAt is the start of the current stake streak; zero when no stake.
	StakedAt uint32
	// RewardPerTokenPaid is the index value at the last settlement.
	RewardPerTokenPaid uint64
	// CapturedReward is settled but not yet requested reward, in token units.
	CapturedReward uint64

	WithdrawalRequestTime         uint32
	WithdrawalRequestAmount       uint64
	WithdrawalRequestRewardAmount uint64
}

// HasWithdrawalRequest reports whether principal or reward is pending release.
func (p *Position) HasWithdrawalRequest() bool {
	return p.WithdrawalRequestAmount > 0 || p.WithdrawalRequestRewardAmount > 0
}

// UnlockTime is the first second at which the pending request may be
// withdrawn under the given delay.
func (p *Position) UnlockTime(delay uint32) uint64 {
	return uint64(p.WithdrawalRequestTime) + uint64(delay)
}

// Unlocked reports whether the pending request may be released at now.
func (p *Position) Unlocked(delay, now uint32) bool {
	return uint64(now) >= p.UnlockTime(delay)
}
