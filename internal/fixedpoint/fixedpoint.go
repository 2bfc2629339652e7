// Package fixedpoint implements the scaled-integer arithmetic used by the
// staking ledger. Reward rates and reward-per-token indexes are integers
// scaled by Precision; products are computed in 256 bits and floored on
// division, so the ledger never rounds in the staker's favour.
package fixedpoint

import (
	"errors"
	"math/bits"

	"github.com/holiman/uint256"
)

const (
	// Precision is the scaling factor of every rate and index numerator (1e12).
	Precision uint64 = 1_000_000_000_000

	SecondsPerDay  uint64 = 24 * 60 * 60
	SecondsPerYear uint64 = 365 * SecondsPerDay
)

// ErrOverflow is returned when a result does not fit in 64 bits.
var ErrOverflow = errors.New("fixed-point overflow")

// ErrDivisionByZero is returned by MulDiv when the divisor is zero.
var ErrDivisionByZero = errors.New("fixed-point division by zero")

// MulDiv returns floor(a*b/divisor) using a 256-bit intermediate.
func MulDiv(a, b, divisor uint64) (uint64, error) {
	if divisor == 0 {
		return 0, ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(
		uint256.NewInt(a), uint256.NewInt(b), uint256.NewInt(divisor))
	if overflow || !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}

// MulDiv3 returns floor(a*b*c/divisor). Used to project promised reward as
// rate * elapsed * stake / Precision without an intermediate rounding step.
func MulDiv3(a, b, c, divisor uint64) (uint64, error) {
	if divisor == 0 {
		return 0, ErrDivisionByZero
	}
	ab := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	z, overflow := new(uint256.Int).MulDivOverflow(ab, uint256.NewInt(c), uint256.NewInt(divisor))
	if overflow || !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}

// Scale is MulDiv with Precision as the divisor: it converts a stake amount
// and a scaled per-token value into real token units.
func Scale(amount, perTokenNumerator uint64) (uint64, error) {
	return MulDiv(amount, perTokenNumerator, Precision)
}

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// Mul returns a*b or ErrOverflow.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// YearlyToPerSecond converts a yearly percentage numerator (8% is
// 80_000_000_000 with Precision 1e12) to a per-second per-token numerator.
// The division truncates, so very small yearly rates floor to zero.
func YearlyToPerSecond(yearlyNumerator uint64) uint64 {
	return yearlyNumerator / SecondsPerYear
}

// PerSecondToYearly is the inverse projection used for reporting.
func PerSecondToYearly(perSecondNumerator uint64) (uint64, error) {
	return Mul(perSecondNumerator, SecondsPerYear)
}

// DaysToSeconds converts a day count to seconds.
func DaysToSeconds(days uint64) (uint64, error) {
	return Mul(days, SecondsPerDay)
}
