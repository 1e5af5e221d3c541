package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomtoy/flipdeck/internal/adapters/decks"
	"github.com/randomtoy/flipdeck/internal/adapters/tui"
	"github.com/randomtoy/flipdeck/internal/app"
	"github.com/randomtoy/flipdeck/internal/config"
	"github.com/randomtoy/flipdeck/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "flipdeck:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the renderer, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deckID := cfg.DefaultDeck
	if len(os.Args) > 1 {
		deckID = os.Args[1]
	}

	var (
		deckStore ports.DeckStore = decks.NewEmbeddedStore()
		watcher   ports.DeckWatcher
	)
	if cfg.DeckDir != "" {
		dirStore := decks.NewDirStore(cfg.DeckDir, logger)
		deckStore, watcher = dirStore, dirStore
	}

	opts := app.Options{Timing: cfg.Timing(), RestartOnInteraction: cfg.RestartOnInteraction}
	svc := app.NewViewerService(deckStore, stdRNG{}, opts, logger)
	defer svc.Close()

	runner, err := svc.Mount(ctx, deckID)
	if err != nil {
		return fmt.Errorf("open deck %q: %w", deckID, err)
	}

	if watcher != nil {
		go func() {
			if err := svc.WatchDecks(ctx, watcher); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("deck watcher stopped", "error", err)
			}
		}()
	}

	_, err = tea.NewProgram(tui.New(ctx, runner), tea.WithAltScreen()).Run()
	return err
}
