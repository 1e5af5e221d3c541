package domain

import (
	"fmt"
	"time"
)

// Phase is the state of the autoplay scheduler.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseWaitingToFlip    Phase = "waiting_to_flip"
	PhaseWaitingToAdvance Phase = "waiting_to_advance"
)

// Action is an event fired by an autoplay session.
type Action int

const (
	ActionNone Action = iota
	// ActionTick decremented the display countdown.
	ActionTick
	// ActionFlip asks the viewer to flip the current card.
	ActionFlip
	// ActionAdvance asks the viewer to move to the next card.
	ActionAdvance
)

func (a Action) String() string {
	switch a {
	case ActionTick:
		return "tick"
	case ActionFlip:
		return "flip"
	case ActionAdvance:
		return "advance"
	default:
		return "none"
	}
}

// Timing holds the autoplay delays.
type Timing struct {
	FlipDelay    time.Duration
	AdvanceDelay time.Duration
	Tick         time.Duration
}

// DefaultTiming waits 5s before flipping, 3s before advancing and counts
// down once per second.
func DefaultTiming() Timing {
	return Timing{
		FlipDelay:    5 * time.Second,
		AdvanceDelay: 3 * time.Second,
		Tick:         time.Second,
	}
}

// Validate rejects phase delays that are not positive. A zero Tick is
// allowed and turns the display countdown off.
func (t Timing) Validate() error {
	switch {
	case t.FlipDelay <= 0:
		return fmt.Errorf("%w: flip delay %s", ErrInvalidTiming, t.FlipDelay)
	case t.AdvanceDelay <= 0:
		return fmt.Errorf("%w: advance delay %s", ErrInvalidTiming, t.AdvanceDelay)
	case t.Tick < 0:
		return fmt.Errorf("%w: tick %s", ErrInvalidTiming, t.Tick)
	}
	return nil
}

// orDefault replaces non-positive phase delays with the defaults, so every
// phase deadline lies strictly after the one before it.
func (t Timing) orDefault() Timing {
	def := DefaultTiming()
	if t.FlipDelay <= 0 {
		t.FlipDelay = def.FlipDelay
	}
	if t.AdvanceDelay <= 0 {
		t.AdvanceDelay = def.AdvanceDelay
	}
	return t
}

// countdownFor converts a delay into whole display ticks, rounding up.
func (t Timing) countdownFor(d time.Duration) int {
	if t.Tick <= 0 {
		return 0
	}
	return int((d + t.Tick - 1) / t.Tick)
}

// AutoplaySession is one enabled period of autoplay. It owns the deadlines of
// its two timers: the chained flip/advance timer and the repeating display
// tick. Nothing outlives the session, so discarding it cancels both.
//
// The session never reads a clock. Callers pass the current time to Step and
// arm a single real timer for NextDeadline.
type AutoplaySession struct {
	timing    Timing
	phase     Phase
	countdown int
	phaseAt   time.Time
	tickAt    time.Time
}

// StartAutoplay enables autoplay at now, waiting to flip. Non-positive phase
// delays fall back to DefaultTiming.
func StartAutoplay(t Timing, now time.Time) *AutoplaySession {
	s := &AutoplaySession{timing: t.orDefault()}
	s.Restart(PhaseWaitingToFlip, now)
	return s
}

func (s *AutoplaySession) Phase() Phase   { return s.phase }
func (s *AutoplaySession) Countdown() int { return s.countdown }

// Restart re-arms the session in phase p as if it had just been entered at now.
func (s *AutoplaySession) Restart(p Phase, now time.Time) {
	switch p {
	case PhaseWaitingToAdvance:
		s.phase = PhaseWaitingToAdvance
		s.phaseAt = now.Add(s.timing.AdvanceDelay)
		s.setCountdown(s.timing.countdownFor(s.timing.AdvanceDelay), now)
	default:
		s.phase = PhaseWaitingToFlip
		s.phaseAt = now.Add(s.timing.FlipDelay)
		s.setCountdown(s.timing.countdownFor(s.timing.FlipDelay), now)
	}
}

// NextDeadline returns the earliest instant at which Step has work to do.
func (s *AutoplaySession) NextDeadline() time.Time {
	if s.tickArmed() && s.tickAt.Before(s.phaseAt) {
		return s.tickAt
	}
	return s.phaseAt
}

// Step fires the earliest event due at or before now and reports it. It
// returns false when nothing is due. Re-arming is measured from the fired
// event's own deadline, so stepping through a long jump of time replays the
// events in the order they would have fired. A tick due at the same instant
// as the phase timer fires first, leaving the phase's countdown in place.
func (s *AutoplaySession) Step(now time.Time) (Action, bool) {
	if s.tickArmed() && !s.tickAt.After(now) && !s.tickAt.After(s.phaseAt) {
		s.setCountdown(s.countdown-1, s.tickAt)
		return ActionTick, true
	}
	if s.phaseAt.After(now) {
		return ActionNone, false
	}
	at := s.phaseAt
	if s.phase == PhaseWaitingToFlip {
		s.Restart(PhaseWaitingToAdvance, at)
		return ActionFlip, true
	}
	s.Restart(PhaseWaitingToFlip, at)
	return ActionAdvance, true
}

func (s *AutoplaySession) tickArmed() bool {
	return s.countdown > 0 && s.timing.Tick > 0
}

func (s *AutoplaySession) setCountdown(v int, at time.Time) {
	s.countdown = max(v, 0)
	s.tickAt = at.Add(s.timing.Tick)
}
