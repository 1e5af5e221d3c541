package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/randomtoy/flipdeck/internal/domain"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// drain steps s until nothing is due at now.
func drain(t *testing.T, s *domain.AutoplaySession, now time.Time) []domain.Action {
	t.Helper()
	var fired []domain.Action
	for {
		a, ok := s.Step(now)
		if !ok {
			return fired
		}
		if s.Countdown() < 0 {
			t.Fatalf("countdown went negative after %s", a)
		}
		fired = append(fired, a)
	}
}

func count(actions []domain.Action, want domain.Action) int {
	n := 0
	for _, a := range actions {
		if a == want {
			n++
		}
	}
	return n
}

func TestAutoplay_Start(t *testing.T) {
	s := domain.StartAutoplay(domain.DefaultTiming(), t0)

	if s.Phase() != domain.PhaseWaitingToFlip {
		t.Errorf("expected waiting_to_flip, got %s", s.Phase())
	}
	if s.Countdown() != 5 {
		t.Errorf("expected countdown 5, got %d", s.Countdown())
	}
	if got := s.NextDeadline(); !got.Equal(t0.Add(time.Second)) {
		t.Errorf("expected first deadline at +1s tick, got %v", got.Sub(t0))
	}
}

func TestAutoplay_Cycle(t *testing.T) {
	s := domain.StartAutoplay(domain.DefaultTiming(), t0)

	fired := drain(t, s, t0.Add(4999*time.Millisecond))
	if count(fired, domain.ActionFlip) != 0 {
		t.Fatal("flipped before 5s")
	}

	fired = drain(t, s, t0.Add(5*time.Second))
	if n := count(fired, domain.ActionFlip); n != 1 {
		t.Fatalf("expected exactly one flip at 5s, got %d", n)
	}
	if s.Countdown() != 3 || s.Phase() != domain.PhaseWaitingToAdvance {
		t.Errorf("after flip: countdown %d phase %s", s.Countdown(), s.Phase())
	}

	fired = drain(t, s, t0.Add(8*time.Second))
	if n := count(fired, domain.ActionAdvance); n != 1 {
		t.Fatalf("expected exactly one advance at 8s, got %d", n)
	}
	if count(fired, domain.ActionFlip) != 0 {
		t.Error("unexpected flip during advance wait")
	}
	if s.Countdown() != 5 || s.Phase() != domain.PhaseWaitingToFlip {
		t.Errorf("after advance: countdown %d phase %s", s.Countdown(), s.Phase())
	}
}

func TestAutoplay_CycleRepeats(t *testing.T) {
	s := domain.StartAutoplay(domain.DefaultTiming(), t0)

	// 10 full cycles of 8s in one jump.
	fired := drain(t, s, t0.Add(80*time.Second))
	if n := count(fired, domain.ActionFlip); n != 10 {
		t.Errorf("expected 10 flips, got %d", n)
	}
	if n := count(fired, domain.ActionAdvance); n != 10 {
		t.Errorf("expected 10 advances, got %d", n)
	}

	// Flips and advances must alternate.
	var last domain.Action
	for _, a := range fired {
		if a == domain.ActionTick {
			continue
		}
		if a == last {
			t.Fatalf("%s fired twice in a row", a)
		}
		last = a
	}
}

func TestAutoplay_CountdownTicks(t *testing.T) {
	s := domain.StartAutoplay(domain.DefaultTiming(), t0)

	for i, want := range []int{4, 3, 2, 1} {
		drain(t, s, t0.Add(time.Duration(i+1)*time.Second))
		if s.Countdown() != want {
			t.Errorf("at %ds: expected countdown %d, got %d", i+1, want, s.Countdown())
		}
	}
}

func TestAutoplay_RestartIntoAdvanceWait(t *testing.T) {
	s := domain.StartAutoplay(domain.DefaultTiming(), t0)
	drain(t, s, t0.Add(2*time.Second))

	s.Restart(domain.PhaseWaitingToAdvance, t0.Add(2*time.Second))
	if s.Countdown() != 3 {
		t.Errorf("expected countdown 3, got %d", s.Countdown())
	}

	fired := drain(t, s, t0.Add(5*time.Second))
	if count(fired, domain.ActionAdvance) != 1 || count(fired, domain.ActionFlip) != 0 {
		t.Errorf("expected a single advance at +3s from restart, got %v", fired)
	}
}

func TestAutoplay_NoTickWithoutTickInterval(t *testing.T) {
	s := domain.StartAutoplay(domain.Timing{FlipDelay: time.Second, AdvanceDelay: time.Second}, t0)

	fired := drain(t, s, t0.Add(2*time.Second))
	if count(fired, domain.ActionTick) != 0 {
		t.Errorf("unexpected ticks: %v", fired)
	}
	if count(fired, domain.ActionFlip) != 1 || count(fired, domain.ActionAdvance) != 1 {
		t.Errorf("expected one flip and one advance, got %v", fired)
	}
}

func TestTiming_Validate(t *testing.T) {
	tests := map[string]domain.Timing{
		"zero value":       {},
		"zero flip delay":  {AdvanceDelay: time.Second, Tick: time.Second},
		"negative advance": {FlipDelay: time.Second, AdvanceDelay: -time.Second},
		"negative tick":    {FlipDelay: time.Second, AdvanceDelay: time.Second, Tick: -1},
	}
	for name, tm := range tests {
		t.Run(name, func(t *testing.T) {
			if err := tm.Validate(); !errors.Is(err, domain.ErrInvalidTiming) {
				t.Errorf("expected ErrInvalidTiming, got %v", err)
			}
		})
	}

	if err := domain.DefaultTiming().Validate(); err != nil {
		t.Errorf("default timing rejected: %v", err)
	}
	if err := (domain.Timing{FlipDelay: time.Second, AdvanceDelay: time.Second}).Validate(); err != nil {
		t.Errorf("zero tick rejected: %v", err)
	}
}

func TestAutoplay_ZeroTimingFallsBackToDefaults(t *testing.T) {
	s := domain.StartAutoplay(domain.Timing{}, t0)

	if fired := drain(t, s, t0); len(fired) != 0 {
		t.Fatalf("expected nothing due at start, got %v", fired)
	}
	if got := s.NextDeadline(); !got.After(t0) {
		t.Fatalf("deadline %v does not lie after start", got)
	}

	fired := drain(t, s, t0.Add(8*time.Second))
	if count(fired, domain.ActionFlip) != 1 || count(fired, domain.ActionAdvance) != 1 {
		t.Errorf("expected one default-timed cycle, got %v", fired)
	}
}
