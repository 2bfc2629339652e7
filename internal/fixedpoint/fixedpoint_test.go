package fixedpoint

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name    string
		a, b, d uint64
		want    uint64
		wantErr error
	}{
		{name: "exact", a: 10, b: 20, d: 5, want: 40},
		{name: "floors", a: 7, b: 3, d: 2, want: 10},
		{name: "wide intermediate", a: math.MaxUint64, b: math.MaxUint64, d: math.MaxUint64, want: math.MaxUint64},
		{name: "below one unit", a: 100, b: 1000, d: Precision, want: 0},
		{name: "result overflows", a: math.MaxUint64, b: 2, d: 1, wantErr: ErrOverflow},
		{name: "zero divisor", a: 1, b: 1, d: 0, wantErr: ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulDiv(tt.a, tt.b, tt.d)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMulDiv3_NoIntermediateRounding(t *testing.T) {
	// 3 * 3 / 2 would floor to 4 if divided early; 3*3*3/2 = 13.
	got, err := MulDiv3(3, 3, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(13), got)

	_, err = MulDiv3(math.MaxUint64, math.MaxUint64, 2, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedArithmetic(t *testing.T) {
	v, err := Add(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	_, err = Add(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrOverflow)

	v, err = Sub(5, 5)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = Sub(4, 5)
	assert.ErrorIs(t, err, ErrOverflow)

	v, err = Mul(1<<32, 1<<31)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, v)

	_, err = Mul(1<<32, 1<<32)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestYearlyToPerSecond(t *testing.T) {
	// 8% yearly.
	assert.Equal(t, uint64(2536), YearlyToPerSecond(80_000_000_000))
	// Rates below one unit per second floor to zero.
	assert.Zero(t, YearlyToPerSecond(SecondsPerYear-1))
	assert.Equal(t, uint64(31_536_000), SecondsPerYear)
}

func TestScale_EightPercentOverOneYear(t *testing.T) {
	rate := YearlyToPerSecond(80_000_000_000)
	increment, err := Mul(rate, SecondsPerYear)
	require.NoError(t, err)

	reward, err := Scale(1_000_000, increment)
	require.NoError(t, err)

	// 1_000_000 * 2536 * 31_536_000 / 1e12, floored: slightly under 8%.
	assert.Equal(t, uint64(79_975), reward)
}

func TestDaysToSeconds(t *testing.T) {
	v, err := DaysToSeconds(31)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_678_400), v)
}
