package staking

import (
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
)

// Update advances the accumulator to now at the given per-second per-token
// rate. With nothing staked only LastUpdateTime moves, so idle periods never
// accrue. It must run before any read of RewardPerTokenStored.
//
// On error the receiver is left untouched.
func (s *Stats) Update(rate uint64, now uint32) error {
	next := *s

	if now < next.LastUpdateTime {
		return overflow(fixedpoint.ErrOverflow)
	}
	elapsed := uint64(now - next.LastUpdateTime)

	if next.TotalStaked == 0 {
		next.LastUpdateTime = now
		*s = next
		return nil
	}
	if elapsed == 0 {
		return nil
	}

	increment, err := fixedpoint.Mul(rate, elapsed)
	if err != nil {
		return overflow(err)
	}
	if next.RewardPerTokenStored, err = fixedpoint.Add(next.RewardPerTokenStored, increment); err != nil {
		return overflow(err)
	}

	promised, err := fixedpoint.Scale(next.TotalStaked, increment)
	if err != nil {
		return overflow(err)
	}
	if next.TotalRewardPromised, err = fixedpoint.Add(next.TotalRewardPromised, promised); err != nil {
		return overflow(err)
	}

	next.LastUpdateTime = now
	*s = next
	return nil
}

// Projected returns a copy of the accumulator advanced to now without
// touching the receiver.
func (s Stats) Projected(rate uint64, now uint32) (Stats, error) {
	if err := s.Update(rate, now); err != nil {
		return Stats{}, err
	}
	return s, nil
}
