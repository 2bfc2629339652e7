package services

import (
	"context"
	"math/big"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

// ProtocolStatus is a read-only snapshot of the ledger.
type ProtocolStatus struct {
	Now      uint32
	Settings staking.Settings
	// Stats is the stored accumulator, not projected.
	Stats           staking.Stats
	TreasuryBalance uint64
	Stakers         int64

	YearlyRewardRatio uint64
	RewardsPerSecond  uint64
	// StoredUnallocated uses the stored promise; ProjectedUnallocated
	// advances it to Now.
	StoredUnallocated    *big.Int
	ProjectedUnallocated *big.Int
	Runway               uint64
}

func (s *StakingService) ProtocolStatus(ctx context.Context) (*ProtocolStatus, error) {
	var out ProtocolStatus
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		st := sc.state
		out.Now = s.clock.Now()
		out.Settings = st.Settings
		out.Stats = st.Stats

		var err error
		if out.TreasuryBalance, err = sc.ledger.Balance(ctx, accounts.Treasury(), st.Settings.AssetID); err != nil {
			return err
		}
		if out.Stakers, err = s.repomanager.Positions(sc.tx).CountStakers(ctx); err != nil {
			return err
		}
		if out.YearlyRewardRatio, err = fixedpoint.PerSecondToYearly(st.Settings.RewardRate); err != nil {
			return staking.ErrMathOverflow
		}
		if out.RewardsPerSecond, err = staking.RewardsPerSecond(st.Stats, st.Settings.RewardRate); err != nil {
			return err
		}

		out.StoredUnallocated = new(big.Int).Sub(
			new(big.Int).SetUint64(st.Stats.TotalRewardProvided),
			new(big.Int).SetUint64(st.Stats.TotalRewardPromised),
		)
		if out.ProjectedUnallocated, err = sc.engine.UnallocatedRewards(st); err != nil {
			return err
		}
		out.Runway, err = sc.engine.RewardRunway(st)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UserStatus is a read-only snapshot of one identity's position.
type UserStatus struct {
	Now      uint32
	User     accounts.Identity
	Exists   bool
	Position staking.Position

	CurrentRewards uint64
	WalletBalance  uint64
	EscrowBalance  uint64

	// UnlockTime is zero without a pending request.
	UnlockTime uint64
	Unlocked   bool
}

func (s *StakingService) UserStatus(ctx context.Context, user accounts.Identity) (*UserStatus, error) {
	if user == "" {
		return nil, staking.ErrInvalidIdentity
	}

	out := UserStatus{User: user}
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		st := sc.state
		out.Now = s.clock.Now()

		pos, err := s.loadPosition(ctx, sc.tx, user, false)
		if err != nil {
			return err
		}
		out.Exists = pos.Owner != ""
		out.Position = *pos

		if out.CurrentRewards, err = sc.engine.CurrentRewards(st, pos); err != nil {
			return err
		}
		asset := st.Settings.AssetID
		if out.WalletBalance, err = sc.ledger.Balance(ctx, accounts.Wallet(user), asset); err != nil {
			return err
		}
		if out.EscrowBalance, err = sc.ledger.Balance(ctx, accounts.Escrow(user), asset); err != nil {
			return err
		}

		if pos.HasWithdrawalRequest() {
			out.UnlockTime = pos.UnlockTime(st.Settings.WithdrawalDelay)
			out.Unlocked = pos.Unlocked(st.Settings.WithdrawalDelay, out.Now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
