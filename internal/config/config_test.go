package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/randomtoy/flipdeck/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "LOG_LEVEL", "DEFAULT_DECK", "DECK_DIR", "FLIP_DELAY",
		"ADVANCE_DELAY", "COUNTDOWN_TICK", "RESTART_ON_INTERACTION", "RATE_LIMIT", "RATE_BURST", "FLIPDECK_LOG"} {
		t.Setenv(k, "")
	}

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTPAddr != ":8080" || c.DefaultDeck != "default" || c.DeckDir != "" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.FlipDelay != 5*time.Second || c.AdvanceDelay != 3*time.Second || c.CountdownTick != time.Second {
		t.Errorf("unexpected timing defaults: %v %v %v", c.FlipDelay, c.AdvanceDelay, c.CountdownTick)
	}
	if c.RestartOnInteraction {
		t.Error("RestartOnInteraction should default to false")
	}
	if c.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", c.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLIP_DELAY", "2s")
	t.Setenv("ADVANCE_DELAY", "1500ms")
	t.Setenv("RESTART_ON_INTERACTION", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_BURST", "5")
	t.Setenv("DECK_DIR", "/srv/decks")

	c, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.FlipDelay != 2*time.Second || c.AdvanceDelay != 1500*time.Millisecond {
		t.Errorf("unexpected delays: %v %v", c.FlipDelay, c.AdvanceDelay)
	}
	if !c.RestartOnInteraction || c.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected flags: %+v", c)
	}
	if c.RateLimit != 2.5 || c.RateBurst != 5 || c.DeckDir != "/srv/decks" {
		t.Errorf("unexpected overrides: %+v", c)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"FLIP_DELAY":             "soon",
		"ADVANCE_DELAY":          "-1s",
		"COUNTDOWN_TICK":         "0s",
		"RESTART_ON_INTERACTION": "maybe",
		"RATE_LIMIT":             "0",
		"RATE_BURST":             "x",
		"LOG_LEVEL":              "loud",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := config.Load(); err == nil {
				t.Errorf("%s=%q: expected error", key, val)
			}
		})
	}
}

func TestConfig_Timing(t *testing.T) {
	t.Setenv("FLIP_DELAY", "2s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tm := cfg.Timing()
	if tm.FlipDelay != 2*time.Second || tm.AdvanceDelay != 3*time.Second || tm.Tick != time.Second {
		t.Errorf("unexpected timing: %+v", tm)
	}
}
