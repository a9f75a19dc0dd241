package load

// Chunks splits xs into contiguous slices of at most n elements. Every chunk
// but the last holds exactly n; a size below one is clamped to one. Empty
// input yields no chunks.
func Chunks[T any](xs []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	var out [][]T
	for i := 0; i < len(xs); i += n {
		end := i + n
		if end > len(xs) {
			end = len(xs)
		}
		out = append(out, xs[i:end])
	}
	return out
}
