package decks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/randomtoy/flipdeck/internal/domain"
)

const deckExt = ".json"

// DirStore serves decks from a directory, one <id>.json file per deck.
// Files are read on every lookup; Watch reports edits as they happen.
type DirStore struct {
	dir    string
	logger *slog.Logger
}

func NewDirStore(dir string, logger *slog.Logger) *DirStore {
	return &DirStore{dir: dir, logger: logger}
}

func (s *DirStore) GetDeck(_ context.Context, deckID string) (domain.Deck, error) {
	if !validID.MatchString(deckID) {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, deckID+deckExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Deck{}, domain.ErrDeckNotFound
		}
		return domain.Deck{}, fmt.Errorf("read deck %s: %w", deckID, err)
	}
	return parseDeck(deckID, raw)
}

// Watch calls onChange with the parsed deck whenever a deck file is written
// or created. Files that fail to parse are logged and skipped, so a
// half-written file never reaches a viewer.
func (s *DirStore) Watch(ctx context.Context, onChange func(domain.Deck)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create deck watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch deck dir %s: %w", s.dir, err)
	}
	s.logger.Info("watching deck directory", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			id, ok := deckIDFromPath(event.Name)
			if !ok {
				continue
			}
			deck, err := s.GetDeck(ctx, id)
			if err != nil {
				s.logger.Warn("decks: failed to reload deck", "deck", id, "err", err)
				continue
			}
			onChange(deck)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("decks: watcher error", "err", err)
		}
	}
}

func deckIDFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if filepath.Ext(base) != deckExt {
		return "", false
	}
	id := strings.TrimSuffix(base, deckExt)
	return id, validID.MatchString(id)
}
