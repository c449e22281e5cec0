package sliding

import "fmt"

// Sum keeps a running prefix sum so the sum of the last w written values
// can be read in O(1) for any w up to the maximum width.
//
// The prefix restarts from zero every time the write index wraps; the
// total at the wrap is kept in wrapJump so reads that straddle the wrap
// stay correct and the prefix magnitude stays bounded.
type Sum struct {
	buffer   []float64
	index    int
	sum      float64
	wrapJump float64
}

// NewSum returns a sliding sum that can read widths in [0, maxWidth].
func NewSum(maxWidth int) (*Sum, error) {
	if maxWidth < 1 {
		return nil, fmt.Errorf("sliding: sum width must be >= 1: %d", maxWidth)
	}

	s := &Sum{buffer: make([]float64, maxWidth+1)}
	s.Reset(0)

	return s, nil
}

// MaxWidth returns the largest readable width.
func (s *Sum) MaxWidth() int {
	return len(s.buffer) - 1
}

// Reset makes the history look as if fill had been written forever.
func (s *Sum) Reset(fill float64) {
	s.index = 0

	acc := 0.0
	for i := range s.buffer {
		s.buffer[i] = acc
		acc += fill
	}

	s.wrapJump = acc
	s.sum = 0
}

// Write appends one value.
func (s *Sum) Write(v float64) {
	s.index++
	if s.index == len(s.buffer) {
		s.index = 0
		s.wrapJump = s.sum
		s.sum = 0
	}

	s.sum += v
	s.buffer[s.index] = s.sum
}

// Read returns the sum of the last width written values. The width is
// clamped to [0, MaxWidth()].
func (s *Sum) Read(width int) float64 {
	if width < 0 {
		width = 0
	} else if width > len(s.buffer)-1 {
		width = len(s.buffer) - 1
	}

	readIndex := s.index - width
	result := s.sum

	if readIndex < 0 {
		result += s.wrapJump
		readIndex += len(s.buffer)
	}

	return result - s.buffer[readIndex]
}

// ReadWrite writes v and returns the sum of the last width values,
// including v.
func (s *Sum) ReadWrite(v float64, width int) float64 {
	s.Write(v)
	return s.Read(width)
}
