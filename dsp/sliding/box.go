package sliding

// Box is a moving-average filter over an adjustable number of samples.
type Box struct {
	sum    *Sum
	length int
}

// NewBox returns a box filter whose length can vary up to maxLength. The
// initial length is maxLength.
func NewBox(maxLength int) (*Box, error) {
	sum, err := NewSum(maxLength)
	if err != nil {
		return nil, err
	}

	return &Box{sum: sum, length: maxLength}, nil
}

// SetLength sets the averaging length, clamped to [1, MaxLength()].
func (b *Box) SetLength(n int) {
	if n < 1 {
		n = 1
	} else if n > b.sum.MaxWidth() {
		n = b.sum.MaxWidth()
	}

	b.length = n
}

// Length returns the averaging length.
func (b *Box) Length() int {
	return b.length
}

// MaxLength returns the largest supported averaging length.
func (b *Box) MaxLength() int {
	return b.sum.MaxWidth()
}

// Process writes v and returns the mean of the last Length() values.
func (b *Box) Process(v float64) float64 {
	return b.sum.ReadWrite(v, b.length) / float64(b.length)
}

// Reset fills the history with fill.
func (b *Box) Reset(fill float64) {
	b.sum.Reset(fill)
}
