package staking

import (
	"math"
	"math/big"

	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
)

// InfiniteRunway is returned by RewardRunway when nothing is being consumed
// or when the runway does not fit in 32-bit seconds.
const InfiniteRunway uint64 = math.MaxUint64

// CurrentRewards is the reward a settlement at this instant would leave in
// the position's CapturedReward. Nothing is mutated.
func (e *Engine) CurrentRewards(st *State, p *Position) (uint64, error) {
	if !st.Initialized() {
		return 0, ErrNotInitialized
	}
	stats, err := st.Stats.Projected(st.Settings.RewardRate, e.clock.Now())
	if err != nil {
		return 0, err
	}
	pos := *p
	if err := pos.Settle(&stats); err != nil {
		return 0, err
	}
	return pos.CapturedReward, nil
}

// UnallocatedRewards is provided minus promised, with promised projected to
// now. A negative value means the pool is under-funded.
func (e *Engine) UnallocatedRewards(st *State) (*big.Int, error) {
	if !st.Initialized() {
		return nil, ErrNotInitialized
	}
	stats, err := st.Stats.Projected(st.Settings.RewardRate, e.clock.Now())
	if err != nil {
		return nil, err
	}
	return unallocated(stats), nil
}

func unallocated(s Stats) *big.Int {
	out := new(big.Int).SetUint64(s.TotalRewardProvided)
	return out.Sub(out, new(big.Int).SetUint64(s.TotalRewardPromised))
}

// RewardRunway is the number of seconds until the unallocated reward is
// consumed at the current rate, or InfiniteRunway.
func (e *Engine) RewardRunway(st *State) (uint64, error) {
	if !st.Initialized() {
		return 0, ErrNotInitialized
	}
	stats, err := st.Stats.Projected(st.Settings.RewardRate, e.clock.Now())
	if err != nil {
		return 0, err
	}
	return runway(stats, st.Settings.RewardRate)
}

func runway(s Stats, rate uint64) (uint64, error) {
	perSecond, err := RewardsPerSecond(s, rate)
	if err != nil {
		return 0, err
	}
	if perSecond == 0 {
		return InfiniteRunway, nil
	}

	var available uint64
	if u := unallocated(s); u.Sign() > 0 {
		// provided - promised never exceeds provided
		available = u.Uint64()
	}

	seconds := available / perSecond
	if seconds > math.MaxUint32 {
		return InfiniteRunway, nil
	}
	return seconds, nil
}

// RewardsPerSecond is the instantaneous consumption of the reward pool.
func RewardsPerSecond(s Stats, rate uint64) (uint64, error) {
	v, err := fixedpoint.MulDiv(s.TotalStaked, rate, fixedpoint.Precision)
	return v, overflow(err)
}
