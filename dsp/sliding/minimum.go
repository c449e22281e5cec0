package sliding

import "fmt"

// Minimum reports the minimum of the last Size() inserted values.
//
// Inserted values are expected not to exceed the ceiling (1 by default,
// the largest output of a gain computer). When the value leaving the
// window equals the cached minimum, a full rescan is deferred until the
// next insert that does not itself become the new minimum; a leaving
// minimum equal to the ceiling never forces a rescan.
type Minimum struct {
	buffer  []float64
	head    int // next write position
	tail    int // oldest value in the window
	size    int
	count   int
	min     float64
	ceiling float64
	dirty   bool
}

// NewMinimum returns a sliding minimum whose window can grow to capacity
// values. The initial window size is capacity.
func NewMinimum(capacity int) (*Minimum, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("sliding: minimum capacity must be >= 1: %d", capacity)
	}

	m := &Minimum{
		buffer:  make([]float64, capacity),
		size:    capacity,
		ceiling: 1,
	}
	m.Reset()

	return m, nil
}

// Capacity returns the largest supported window size.
func (m *Minimum) Capacity() int {
	return len(m.buffer)
}

// Size returns the current window size.
func (m *Minimum) Size() int {
	return m.size
}

// Len returns the number of values currently inside the window.
func (m *Minimum) Len() int {
	return m.count
}

// SetCeiling sets the largest value the input may take and rescans.
func (m *Minimum) SetCeiling(v float64) {
	m.ceiling = v
	m.recalculate()
}

// SetSize changes the window size, clamped to [1, Capacity()].
//
// Shrinking drops the oldest values and rescans. Growing only raises the
// bound: values that already left the window are not brought back.
func (m *Minimum) SetSize(n int) {
	if n < 1 {
		n = 1
	} else if n > len(m.buffer) {
		n = len(m.buffer)
	}

	if n < m.size {
		if drop := m.count - n; drop > 0 {
			m.tail = (m.tail + drop) % len(m.buffer)
			m.count = n
		}

		m.recalculate()
	}

	m.size = n
}

// Add inserts v and updates the minimum.
func (m *Minimum) Add(v float64) {
	if m.count < m.size {
		m.count++
	} else {
		if m.buffer[m.tail] == m.min && m.min < m.ceiling {
			m.dirty = true
		}

		m.tail++
		if m.tail == len(m.buffer) {
			m.tail = 0
		}
	}

	m.buffer[m.head] = v

	m.head++
	if m.head == len(m.buffer) {
		m.head = 0
	}

	if v < m.min {
		m.min = v
		m.dirty = false
	} else if m.dirty {
		m.recalculate()
	}
}

// Process inserts v and returns the window minimum.
func (m *Minimum) Process(v float64) float64 {
	m.Add(v)
	return m.min
}

// Min returns the minimum of the window, or the ceiling when empty.
func (m *Minimum) Min() float64 {
	return m.min
}

// Reset empties the window. The window size is kept.
func (m *Minimum) Reset() {
	for i := range m.buffer {
		m.buffer[i] = m.ceiling
	}

	m.head = 0
	m.tail = 0
	m.count = 0
	m.min = m.ceiling
	m.dirty = false
}

func (m *Minimum) recalculate() {
	m.min = m.ceiling

	idx := m.tail
	for range m.count {
		if m.buffer[idx] < m.min {
			m.min = m.buffer[idx]
		}

		idx++
		if idx == len(m.buffer) {
			idx = 0
		}
	}

	m.dirty = false
}
