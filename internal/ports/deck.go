package ports

import (
	"context"

	"github.com/randomtoy/flipdeck/internal/domain"
)

// DeckStore provides access to flashcard decks.
type DeckStore interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// DeckWatcher reports decks whose source changed. Watch blocks until ctx is
// done, calling onChange with each freshly parsed deck.
type DeckWatcher interface {
	Watch(ctx context.Context, onChange func(domain.Deck)) error
}
