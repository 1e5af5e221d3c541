package decks_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randomtoy/flipdeck/internal/adapters/decks"
	"github.com/randomtoy/flipdeck/internal/domain"
)

const spanishDeck = `{"name":"Spanish","cards":[{"id":1,"front":"hola","back":"hello"},{"id":2,"front":"adiós","back":"goodbye"}]}`

func writeDeck(t *testing.T, dir, id, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
}

func newDirStore(t *testing.T) (*decks.DirStore, string) {
	t.Helper()
	dir := t.TempDir()
	return decks.NewDirStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil))), dir
}

func TestDirStore_GetDeck(t *testing.T) {
	s, dir := newDirStore(t)
	writeDeck(t, dir, "spanish", spanishDeck)

	deck, err := s.GetDeck(context.Background(), "spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.ID != "spanish" || deck.Name != "Spanish" || len(deck.Cards) != 2 {
		t.Errorf("unexpected deck: %+v", deck)
	}
}

func TestDirStore_NameDefaultsToID(t *testing.T) {
	s, dir := newDirStore(t)
	writeDeck(t, dir, "plain", `{"cards":[]}`)

	deck, err := s.GetDeck(context.Background(), "plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.Name != "plain" {
		t.Errorf("expected name to default to id, got %q", deck.Name)
	}
}

func TestDirStore_Errors(t *testing.T) {
	s, dir := newDirStore(t)
	writeDeck(t, dir, "broken", `{"cards": [`)
	writeDeck(t, dir, "dupes", `{"cards":[{"id":1},{"id":1}]}`)

	tests := []struct {
		id   string
		want error
	}{
		{"missing", domain.ErrDeckNotFound},
		{"../etc/passwd", domain.ErrDeckNotFound},
		{"broken", domain.ErrInvalidDeck},
		{"dupes", domain.ErrDuplicateCardID},
	}
	for _, tt := range tests {
		_, err := s.GetDeck(context.Background(), tt.id)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.id, tt.want, err)
		}
	}
}

func TestDirStore_Watch(t *testing.T) {
	s, dir := newDirStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan domain.Deck, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Watch(ctx, func(d domain.Deck) {
			select {
			case changed <- d:
			default:
			}
		})
	}()

	// The watcher registers asynchronously; keep rewriting until it notices.
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case d := <-changed:
			if d.ID != "spanish" || len(d.Cards) != 2 {
				t.Fatalf("unexpected deck from watcher: %+v", d)
			}
			cancel()
			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
			return
		case <-tick.C:
			writeDeck(t, dir, "spanish", spanishDeck)
		case <-deadline:
			t.Fatal("watcher never reported the deck")
		}
	}
}

func TestDirStore_WatchMissingDir(t *testing.T) {
	s := decks.NewDirStore(filepath.Join(t.TempDir(), "nope"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := s.Watch(context.Background(), func(domain.Deck) {}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
