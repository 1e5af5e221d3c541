package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Orientation is the face of a card currently turned towards the viewer.
type Orientation string

const (
	Front Orientation = "front"
	Back  Orientation = "back"
)

// Card is a single flashcard. Cards are immutable once loaded.
type Card struct {
	ID    int    `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Face returns the text printed on the given side of the card.
func (c Card) Face(o Orientation) string {
	if o == Back {
		return c.Back
	}
	return c.Front
}

// Deck is a named, ordered collection of flashcards.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}
