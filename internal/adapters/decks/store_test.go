package decks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/randomtoy/flipdeck/internal/adapters/decks"
	"github.com/randomtoy/flipdeck/internal/domain"
)

func TestEmbeddedStore_DefaultDeck(t *testing.T) {
	s := decks.NewEmbeddedStore()

	deck, err := s.GetDeck(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.ID != "default" || deck.Name == "" {
		t.Errorf("unexpected deck header: %q %q", deck.ID, deck.Name)
	}
	if len(deck.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(deck.Cards))
	}
	if deck.Cards[0].Front != "Who created this program?" || deck.Cards[0].Back != "John and Ditto" {
		t.Errorf("unexpected first card: %+v", deck.Cards[0])
	}
}

func TestEmbeddedStore_NotFound(t *testing.T) {
	s := decks.NewEmbeddedStore()

	_, err := s.GetDeck(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
}
