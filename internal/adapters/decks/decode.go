package decks

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-json"

	"github.com/randomtoy/flipdeck/internal/domain"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// deckFile is the on-disk shape of a deck. The deck ID comes from the file name.
type deckFile struct {
	Name  string        `json:"name"`
	Cards []domain.Card `json:"cards"`
}

// parseDeck decodes and validates one deck file.
func parseDeck(id string, raw []byte) (domain.Deck, error) {
	var f deckFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidDeck, id, err)
	}
	if err := domain.ValidateCards(f.Cards); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDeck, id, err)
	}
	name := f.Name
	if name == "" {
		name = id
	}
	return domain.Deck{ID: id, Name: name, Cards: f.Cards}, nil
}
