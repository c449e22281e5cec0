package core

// Resize returns buf with length n. The backing array is kept when it is
// large enough, so the contents are whatever buf held before.
func Resize[T any](buf []T, n int) []T {
	switch {
	case n <= 0:
		return buf[:0]
	case n <= cap(buf):
		return buf[:n]
	default:
		return make([]T, n)
	}
}

// Zeroed is Resize followed by clearing every element.
func Zeroed[T any](buf []T, n int) []T {
	buf = Resize(buf, n)
	clear(buf)

	return buf
}
