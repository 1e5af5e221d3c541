package domain

// Permutation maps active positions to canonical indices: active[i] = canonical[p[i]].
type Permutation []int

// Identity returns the permutation that keeps load order.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Shuffle returns a uniformly random permutation of n positions.
// Any card may land anywhere, including its current position.
func Shuffle(n int, rng RNG) Permutation {
	p := Identity(n)
	// Fisher-Yates over the full deck.
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// IsIdentity reports whether p leaves every position in place.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}
	return true
}

// Apply returns the cards in permuted order. The input slice is not modified.
func (p Permutation) Apply(cards []Card) []Card {
	out := make([]Card, len(p))
	for i, idx := range p {
		out[i] = cards[idx]
	}
	return out
}
