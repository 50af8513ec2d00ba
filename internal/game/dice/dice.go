// Package dice provides the randomness abstraction used by the skirmish
// engine and its collaborators.
package dice

// Source is the randomness provider for every random decision in a match.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Coin flips a fair coin.
//
// Precondition: src must be non-nil.
// Postcondition: Returns true with probability 1/2.
func Coin(src Source) bool {
	return src.Intn(2) == 0
}

// Pick returns a uniformly chosen index in [0, n).
//
// Precondition: src must be non-nil; n > 0.
func Pick(src Source, n int) int {
	return src.Intn(n)
}

// Shuffle permutes n elements in place using a Fisher-Yates walk driven by src.
// swap is called with the indices of the two elements to exchange.
//
// Precondition: src and swap must be non-nil; n >= 0.
// Postcondition: Every permutation of the n elements is equally likely
// provided src is uniform.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
