// Package peak provides lock-free peak-hold meters shared between a
// real-time writer and any number of readers.
package peak

import (
	"math"
	"sync/atomic"
)

// Meter holds the largest value written since the last reset. The zero
// value is a meter reading 0.
//
// UpdateIfGreater is meant for a single writer. Load and ReadAndReset may
// be called from other goroutines at any time.
type Meter struct {
	bits atomic.Uint64
}

// UpdateIfGreater raises the held value to v if v is larger. NaN is
// ignored.
func (m *Meter) UpdateIfGreater(v float64) {
	for {
		old := m.bits.Load()
		if !(v > math.Float64frombits(old)) {
			return
		}

		if m.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// Load returns the held value without resetting it.
func (m *Meter) Load() float64 {
	return math.Float64frombits(m.bits.Load())
}

// ReadAndReset returns the held value and resets the meter to 0.
func (m *Meter) ReadAndReset() float64 {
	return math.Float64frombits(m.bits.Swap(0))
}

// Reset sets the meter to 0.
func (m *Meter) Reset() {
	m.bits.Store(0)
}

// Stereo is a pair of meters for the left and right channels.
type Stereo [2]Meter

// ReadAndReset returns both held values and resets them.
func (s *Stereo) ReadAndReset() (left, right float64) {
	return s[0].ReadAndReset(), s[1].ReadAndReset()
}

// Reset sets both meters to 0.
func (s *Stereo) Reset() {
	s[0].Reset()
	s[1].Reset()
}
