package domain

import "fmt"

// DeckView holds the canonical card order of a loaded deck and the
// permutation currently applied to it. The active order is always derived
// from the two, so it cannot drift from the canonical cards.
type DeckView struct {
	cards []Card
	perm  Permutation
}

// NewDeckView loads cards into a fresh view in canonical order.
func NewDeckView(cards []Card) (*DeckView, error) {
	d := &DeckView{}
	if err := d.Load(cards); err != nil {
		return nil, err
	}
	return d, nil
}

// ValidateCards rejects card lists whose ids are not unique.
func ValidateCards(cards []Card) error {
	seen := make(map[int]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateCardID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Load replaces the canonical deck and resets the active order to load order.
func (d *DeckView) Load(cards []Card) error {
	if err := ValidateCards(cards); err != nil {
		return err
	}
	d.cards = append([]Card(nil), cards...)
	d.perm = Identity(len(cards))
	return nil
}

// Shuffle draws a new active order. The canonical order is untouched.
func (d *DeckView) Shuffle(rng RNG) {
	d.perm = Shuffle(len(d.cards), rng)
}

// Shuffled reports whether the active order differs from load order.
func (d *DeckView) Shuffled() bool {
	return !d.perm.IsIdentity()
}

// Len returns the number of cards in the active order.
func (d *DeckView) Len() int {
	return len(d.perm)
}

// CardAt returns the card at position i of the active order.
func (d *DeckView) CardAt(i int) (Card, bool) {
	if i < 0 || i >= len(d.perm) {
		return Card{}, false
	}
	return d.cards[d.perm[i]], true
}

// Active returns a copy of the active order.
func (d *DeckView) Active() []Card {
	return d.perm.Apply(d.cards)
}
