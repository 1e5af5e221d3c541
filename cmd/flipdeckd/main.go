package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/time/rate"

	"github.com/randomtoy/flipdeck/internal/adapters/decks"
	httpadapter "github.com/randomtoy/flipdeck/internal/adapters/http"
	"github.com/randomtoy/flipdeck/internal/app"
	"github.com/randomtoy/flipdeck/internal/config"
	"github.com/randomtoy/flipdeck/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded, safe for concurrent use).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	if watcher != nil {
		go func() {
			if err := svc.WatchDecks(ctx, watcher); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("deck watcher stopped", "error", err)
			}
		}()
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	e := httpadapter.NewServer(httpadapter.NewHandler(svc, cfg.DefaultDeck, limiter), logger)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
