package engine

import "math/rand"

// shuffle permutes s in place using the injected source so that outcomes are
// reproducible from the game seed.
func shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// sample removes and returns n elements drawn uniformly without replacement.
// It returns the shortened slice alongside the drawn elements.
func sample[T any](rng *rand.Rand, s []T, n int) ([]T, []T) {
	if n > len(s) {
		n = len(s)
	}
	drawn := make([]T, 0, n)
	for i := 0; i < n; i++ {
		idx := rng.Intn(len(s))
		drawn = append(drawn, s[idx])
		s = append(s[:idx], s[idx+1:]...)
	}
	return s, drawn
}

// pickOne removes a single uniformly random element.
func pickOne[T any](rng *rand.Rand, s []T) ([]T, T, bool) {
	var zero T
	if len(s) == 0 {
		return s, zero, false
	}
	idx := rng.Intn(len(s))
	v := s[idx]
	return append(s[:idx], s[idx+1:]...), v, true
}
