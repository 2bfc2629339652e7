// Package clock supplies the ledger's notion of "now" in unsigned 32-bit
// unix seconds.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time in unix seconds.
type Clock interface {
	Now() uint32
}

// System reads the wall clock.
type System struct{}

func (System) Now() uint32 { return uint32(time.Now().Unix()) }

// Func adapts a function to Clock.
type Func func() uint32

func (f Func) Now() uint32 { return f() }

// Monotonic never returns a value lower than a previous reading or the
// configured floor, even if the wrapped clock steps backwards.
type Monotonic struct {
	mu   sync.Mutex
	src  Clock
	last uint32
}

func NewMonotonic(src Clock, floor uint32) *Monotonic {
	return &Monotonic{src: src, last: floor}
}

func (m *Monotonic) Now() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now := m.src.Now(); now > m.last {
		m.last = now
	}
	return m.last
}

// Raise lifts the floor, e.g. to a persisted last-update time.
func (m *Monotonic) Raise(floor uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if floor > m.last {
		m.last = floor
	}
}

// Manual is a settable clock for tests and simulations.
type Manual struct {
	mu  sync.Mutex
	now uint32
}

func NewManual(start uint32) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(now uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Manual) Advance(seconds uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += seconds
}
