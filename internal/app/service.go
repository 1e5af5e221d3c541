package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/randomtoy/flipdeck/internal/domain"
	"github.com/randomtoy/flipdeck/internal/ports"
)

type mounted struct {
	runner *Runner
	deckID string
	cancel context.CancelFunc
}

// ViewerService mounts flashcard viewers on decks and tears them down. Each
// mounted viewer runs in its own Runner goroutine.
type ViewerService struct {
	deckStore ports.DeckStore
	rng       domain.RNG
	opts      Options
	logger    *slog.Logger
	newID     func() string

	mu      sync.Mutex
	viewers map[string]*mounted
	wg      sync.WaitGroup
}

func NewViewerService(ds ports.DeckStore, rng domain.RNG, opts Options, logger *slog.Logger) *ViewerService {
	return &ViewerService{
		deckStore: ds,
		rng:       rng,
		opts:      opts,
		logger:    logger,
		newID:     uuid.NewString,
		viewers:   make(map[string]*mounted),
	}
}

// Deck returns a deck from the underlying store.
func (s *ViewerService) Deck(ctx context.Context, deckID string) (domain.Deck, error) {
	deck, err := s.deckStore.GetDeck(ctx, deckID)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("get deck: %w", err)
	}
	return deck, nil
}

// Mount creates a viewer on deckID and starts its runner. The runner lives
// until Unmount or Close, independently of ctx.
func (s *ViewerService) Mount(ctx context.Context, deckID string) (*Runner, error) {
	deck, err := s.Deck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	v, err := NewViewer(deck, s.rng, s.opts)
	if err != nil {
		return nil, fmt.Errorf("mount viewer: %w", err)
	}

	id := s.newID()
	r := NewRunner(id, v, s.logger)
	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.viewers[id] = &mounted{runner: r, deckID: deck.ID, cancel: cancel}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		r.Run(runCtx)
	}()

	s.logger.Info("viewer mounted", "viewer_id", id, "deck", deck.ID, "cards", len(deck.Cards))
	return r, nil
}

// Viewer looks up a mounted viewer.
func (s *ViewerService) Viewer(id string) (*Runner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.viewers[id]
	if !ok {
		return nil, domain.ErrViewerNotFound
	}
	return m.runner, nil
}

// Unmount tears a viewer down and waits for its runner to stop.
func (s *ViewerService) Unmount(ctx context.Context, id string) error {
	s.mu.Lock()
	m, ok := s.viewers[id]
	delete(s.viewers, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrViewerNotFound
	}

	m.cancel()
	select {
	case <-m.runner.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.logger.Info("viewer unmounted", "viewer_id", id)
	return nil
}

// Count returns the number of mounted viewers.
func (s *ViewerService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// ReloadDeck loads new cards into every viewer mounted on deck.ID.
func (s *ViewerService) ReloadDeck(ctx context.Context, deck domain.Deck) {
	s.mu.Lock()
	var targets []*Runner
	for _, m := range s.viewers {
		if m.deckID == deck.ID {
			targets = append(targets, m.runner)
		}
	}
	s.mu.Unlock()

	for _, r := range targets {
		if _, err := r.Load(ctx, deck.Cards); err != nil {
			s.logger.WarnContext(ctx, "reload deck into viewer failed", "viewer_id", r.ID(), "deck", deck.ID, "error", err)
		}
	}
	s.logger.InfoContext(ctx, "deck reloaded", "deck", deck.ID, "viewers", len(targets))
}

// WatchDecks reloads mounted viewers whenever w reports a changed deck.
// It blocks until ctx is done.
func (s *ViewerService) WatchDecks(ctx context.Context, w ports.DeckWatcher) error {
	return w.Watch(ctx, func(deck domain.Deck) {
		s.ReloadDeck(ctx, deck)
	})
}

// Close tears down every mounted viewer and waits for their runners.
func (s *ViewerService) Close() {
	s.mu.Lock()
	for id, m := range s.viewers {
		m.cancel()
		delete(s.viewers, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
