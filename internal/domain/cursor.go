package domain

// Advance moves cursor one step forward in a sequence of n cards, wrapping
// to the start. It returns 0 for an empty sequence.
func Advance(cursor, n int) int {
	return wrap(cursor+1, n)
}

// Retreat moves cursor one step back, wrapping to the end.
func Retreat(cursor, n int) int {
	return wrap(cursor-1, n)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
