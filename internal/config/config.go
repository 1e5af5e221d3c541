package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/randomtoy/flipdeck/internal/domain"
)

type Config struct {
	HTTPAddr             string
	LogLevel             slog.Level
	LogFile              string
	DefaultDeck          string
	DeckDir              string
	FlipDelay            time.Duration
	AdvanceDelay         time.Duration
	CountdownTick        time.Duration
	RestartOnInteraction bool
	RateLimit            float64
	RateBurst            int
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		LogFile:       os.Getenv("FLIPDECK_LOG"),
		DefaultDeck:   envOr("DEFAULT_DECK", "default"),
		DeckDir:       os.Getenv("DECK_DIR"),
		FlipDelay:     5 * time.Second,
		AdvanceDelay:  3 * time.Second,
		CountdownTick: time.Second,
		RateLimit:     20,
		RateBurst:     40,
	}

	var err error
	if c.FlipDelay, err = durationEnv("FLIP_DELAY", c.FlipDelay); err != nil {
		return Config{}, err
	}
	if c.AdvanceDelay, err = durationEnv("ADVANCE_DELAY", c.AdvanceDelay); err != nil {
		return Config{}, err
	}
	if c.CountdownTick, err = durationEnv("COUNTDOWN_TICK", c.CountdownTick); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("RESTART_ON_INTERACTION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RESTART_ON_INTERACTION %q: %w", v, err)
		}
		c.RestartOnInteraction = b
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", v)
		}
		c.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid RATE_BURST %q", v)
		}
		c.RateBurst = n
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

// Timing returns the autoplay delays configured for new viewers.
func (c Config) Timing() domain.Timing {
	return domain.Timing{
		FlipDelay:    c.FlipDelay,
		AdvanceDelay: c.AdvanceDelay,
		Tick:         c.CountdownTick,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationEnv parses a positive duration from key, or returns fallback when unset.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
