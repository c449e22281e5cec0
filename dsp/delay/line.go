// Package delay provides the fixed-capacity look-ahead delay line.
package delay

import "fmt"

// Line is a circular delay line with integer reads. Its capacity is fixed
// at construction; Read(0) returns the most recently written sample.
type Line struct {
	buffer   []float64
	writePos int
	maxDelay int
}

// New returns a delay line able to serve delays in [0, maxDelay] samples.
func New(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay: max delay must be >= 0: %d", maxDelay)
	}

	d := &Line{
		buffer:   make([]float64, maxDelay+2),
		maxDelay: maxDelay,
	}
	d.Reset()

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the largest delay Read serves without clamping.
func (d *Line) MaxDelay() int {
	return d.maxDelay
}

// Write advances the cursor and stores one sample.
func (d *Line) Write(sample float64) {
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}

	d.buffer[d.writePos] = sample
}

// Read returns the sample written delay writes ago. The delay is clamped
// to [0, MaxDelay].
func (d *Line) Read(delay int) float64 {
	if delay < 0 {
		delay = 0
	} else if delay > d.maxDelay {
		delay = d.maxDelay
	}

	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += len(d.buffer)
	}

	return d.buffer[readPos]
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = len(d.buffer) - 1
}
