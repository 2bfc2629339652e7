package services

import (
	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

// Message renders the snapshot as its wire form.
func (p *ProtocolStatus) Message() *api.ProtocolStatusResponse {
	return &api.ProtocolStatusResponse{
		Now:                    p.Now,
		Administrator:          string(p.Settings.Administrator),
		PendingAdministrator:   string(p.Settings.PendingAdministrator),
		AssetID:                p.Settings.AssetID,
		WithdrawalDelaySeconds: p.Settings.WithdrawalDelay,
		RewardRate:             p.Settings.RewardRate,
		RewardPerTokenStored:   p.Stats.RewardPerTokenStored,
		LastUpdateTime:         p.Stats.LastUpdateTime,
		TotalStaked:            p.Stats.TotalStaked,
		TotalRewardPromised:    p.Stats.TotalRewardPromised,
		TotalRewardProvided:    p.Stats.TotalRewardProvided,
		TreasuryBalance:        p.TreasuryBalance,
		Stakers:                p.Stakers,
		YearlyRewardRatio:      p.YearlyRewardRatio,
		RewardsPerSecond:       p.RewardsPerSecond,
		StoredUnallocated:      p.StoredUnallocated.String(),
		ProjectedUnallocated:   p.ProjectedUnallocated.String(),
		RunwaySeconds:          p.Runway,
		RunwayInfinite:         p.Runway == staking.InfiniteRunway,
	}
}

func (u *UserStatus) Message() *api.UserStatusResponse {
	return &api.UserStatusResponse{
		Now:                           u.Now,
		Identity:                      string(u.User),
		Exists:                        u.Exists,
		StakeAmount:                   u.Position.StakeAmount,
		StakedAt:                      u.Position.StakedAt,
		RewardPerTokenPaid:            u.Position.RewardPerTokenPaid,
		CapturedReward:                u.Position.CapturedReward,
		WithdrawalRequestTime:         u.Position.WithdrawalRequestTime,
		WithdrawalRequestAmount:       u.Position.WithdrawalRequestAmount,
		WithdrawalRequestRewardAmount: u.Position.WithdrawalRequestRewardAmount,
		CurrentRewards:                u.CurrentRewards,
		WalletBalance:                 u.WalletBalance,
		EscrowBalance:                 u.EscrowBalance,
		UnlockTime:                    u.UnlockTime,
		Unlocked:                      u.Unlocked,
	}
}
