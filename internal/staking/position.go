package staking

import (
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
)

// uncapturedReward is stake * (index - paid) / Precision, floored.
func uncapturedReward(stake, index, paid uint64) (uint64, error) {
	diff, err := fixedpoint.Sub(index, paid)
	if err != nil {
		return 0, overflow(err)
	}
	earned, err := fixedpoint.Scale(stake, diff)
	if err != nil {
		return 0, overflow(err)
	}
	return earned, nil
}

// Settle folds the reward earned since the last settlement into
// CapturedReward and moves the high-water mark to the current index. Call it
// right after Stats.Update; a second call at the same index captures nothing.
//
// On error the receiver is left untouched.
func (p *Position) Settle(stats *Stats) error {
	earned, err := uncapturedReward(p.StakeAmount, stats.RewardPerTokenStored, p.RewardPerTokenPaid)
	if err != nil {
		return err
	}
	captured, err := fixedpoint.Add(p.CapturedReward, earned)
	if err != nil {
		return overflow(err)
	}
	p.CapturedReward = captured
	p.RewardPerTokenPaid = stats.RewardPerTokenStored
	return nil
}
