package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_IsCloseToWallClock(t *testing.T) {
	now := uint32(time.Now().Unix())
	got := System{}.Now()
	assert.InDelta(t, float64(now), float64(got), 2)
}

func TestMonotonic_NeverGoesBackwards(t *testing.T) {
	src := NewManual(100)
	m := NewMonotonic(src, 0)

	assert.Equal(t, uint32(100), m.Now())

	src.Set(90)
	assert.Equal(t, uint32(100), m.Now())

	src.Set(110)
	assert.Equal(t, uint32(110), m.Now())
}

func TestMonotonic_Floor(t *testing.T) {
	src := NewManual(50)
	m := NewMonotonic(src, 80)
	assert.Equal(t, uint32(80), m.Now())

	m.Raise(120)
	assert.Equal(t, uint32(120), m.Now())

	m.Raise(10)
	assert.Equal(t, uint32(120), m.Now())
}

func TestManual_Advance(t *testing.T) {
	c := NewManual(1)
	c.Advance(9)
	assert.Equal(t, uint32(10), c.Now())
}

func TestFunc(t *testing.T) {
	var c Clock = Func(func() uint32 { return 7 })
	assert.Equal(t, uint32(7), c.Now())
}
