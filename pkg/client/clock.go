package client

import "time"

// Clock measures the interval between Update calls, for embedding loops
// that want per-frame delta time. Per-client state, never package-global.
type Clock struct {
	last  time.Time
	Delta time.Duration
}

// Update returns the time since the previous Update; the first call after
// a Reset returns zero.
func (k *Clock) Update() time.Duration {
	now := time.Now()
	if k.last.IsZero() {
		k.last = now
		return 0
	}
	k.Delta = now.Sub(k.last)
	k.last = now
	return k.Delta
}

// Reset forgets the previous tick.
func (k *Clock) Reset() {
	k.last = time.Time{}
	k.Delta = 0
}
