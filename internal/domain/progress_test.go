package domain_test

import (
	"testing"

	"github.com/randomtoy/flipdeck/internal/domain"
)

func TestProgressOf(t *testing.T) {
	cards := testCards(4)

	tests := []struct {
		name     string
		active   []domain.Card
		id       int
		label    string
		fraction float64
	}{
		{"first", cards, 1, "1 / 4", 0.25},
		{"last", cards, 4, "4 / 4", 1},
		{"missing id", cards, 99, "0 / 4", 0},
		{"empty deck", nil, 0, "0 / 0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.ProgressOf(tt.active, tt.id)
			if p.Label() != tt.label {
				t.Errorf("label: expected %q, got %q", tt.label, p.Label())
			}
			if p.Fraction() != tt.fraction {
				t.Errorf("fraction: expected %v, got %v", tt.fraction, p.Fraction())
			}
		})
	}
}

func TestProgressOf_FollowsIDNotCursor(t *testing.T) {
	cards := testCards(3)
	reordered := []domain.Card{cards[2], cards[0], cards[1]}

	p := domain.ProgressOf(reordered, cards[0].ID)
	if p.Position != 2 {
		t.Errorf("expected position 2, got %d", p.Position)
	}
}
