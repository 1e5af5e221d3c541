package app

import (
	"fmt"
	"time"

	"github.com/randomtoy/flipdeck/internal/domain"
)

// Options configures how a viewer runs autoplay.
type Options struct {
	Timing domain.Timing
	// RestartOnInteraction restarts the autoplay cycle after a manual flip,
	// navigation or shuffle. When false, manual actions leave the running
	// timers alone.
	RestartOnInteraction bool
}

// DefaultOptions uses the default timing and leaves autoplay timers alone on
// manual interaction.
func DefaultOptions() Options {
	return Options{Timing: domain.DefaultTiming()}
}

// Viewer is the state of one flashcard view: the deck, the cursor, the flip
// state of the displayed card and the autoplay session, if any.
//
// A Viewer is not safe for concurrent use and never starts timers. Callers
// pass the current time into every operation and call Elapse once the
// deadline reported by NextDeadline has passed.
type Viewer struct {
	deckID   string
	deckName string
	deck     *domain.DeckView
	cursor   int
	flip     domain.FlipState
	autoplay *domain.AutoplaySession
	rng      domain.RNG
	opts     Options
}

func NewViewer(deck domain.Deck, rng domain.RNG, opts Options) (*Viewer, error) {
	if err := opts.Timing.Validate(); err != nil {
		return nil, err
	}
	view, err := domain.NewDeckView(deck.Cards)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", deck.ID, err)
	}
	return &Viewer{
		deckID:   deck.ID,
		deckName: deck.Name,
		deck:     view,
		flip:     domain.NewFlipState(),
		rng:      rng,
		opts:     opts,
	}, nil
}

// Current returns the displayed card, or false when the deck is empty.
func (v *Viewer) Current() (domain.Card, bool) {
	return v.deck.CardAt(v.cursor)
}

// Next moves to the following card, front side up.
func (v *Viewer) Next(now time.Time) {
	v.advance()
	v.interacted(domain.PhaseWaitingToFlip, now)
}

// Prev moves to the preceding card, front side up.
func (v *Viewer) Prev(now time.Time) {
	if v.deck.Len() == 0 {
		return
	}
	v.flip.Reset()
	v.cursor = domain.Retreat(v.cursor, v.deck.Len())
	v.interacted(domain.PhaseWaitingToFlip, now)
}

// Flip turns the displayed card over. It does nothing on an empty deck.
func (v *Viewer) Flip(now time.Time) {
	if v.deck.Len() == 0 {
		return
	}
	v.flip.Flip()
	v.interacted(domain.PhaseWaitingToAdvance, now)
}

// Shuffle draws a new active order and jumps to its first card.
func (v *Viewer) Shuffle(now time.Time) {
	v.deck.Shuffle(v.rng)
	v.cursor = 0
	v.flip.Reset()
	v.interacted(domain.PhaseWaitingToFlip, now)
}

// Load replaces the deck's cards and jumps to the first card. A running
// autoplay session keeps its timers.
func (v *Viewer) Load(cards []domain.Card) error {
	if err := v.deck.Load(cards); err != nil {
		return fmt.Errorf("load deck %s: %w", v.deckID, err)
	}
	v.cursor = 0
	v.flip.Reset()
	return nil
}

// SetAutoplay enables or disables autoplay. Enabling an enabled viewer keeps
// the running session; disabling drops it together with its timers.
func (v *Viewer) SetAutoplay(enabled bool, now time.Time) {
	switch {
	case enabled && v.autoplay == nil:
		v.autoplay = domain.StartAutoplay(v.opts.Timing, now)
	case !enabled:
		v.autoplay = nil
	}
}

// ToggleAutoplay flips the autoplay switch.
func (v *Viewer) ToggleAutoplay(now time.Time) {
	v.SetAutoplay(v.autoplay == nil, now)
}

// Autoplaying reports whether an autoplay session is active.
func (v *Viewer) Autoplaying() bool {
	return v.autoplay != nil
}

// NextDeadline returns when Elapse next has work, or false when autoplay is off.
func (v *Viewer) NextDeadline() (time.Time, bool) {
	if v.autoplay == nil {
		return time.Time{}, false
	}
	return v.autoplay.NextDeadline(), true
}

// Elapse runs every autoplay event due at or before now and returns them in
// firing order.
func (v *Viewer) Elapse(now time.Time) []domain.Action {
	if v.autoplay == nil {
		return nil
	}
	var fired []domain.Action
	for {
		a, ok := v.autoplay.Step(now)
		if !ok {
			return fired
		}
		switch a {
		case domain.ActionFlip:
			if v.deck.Len() > 0 {
				v.flip.Flip()
			}
		case domain.ActionAdvance:
			v.advance()
		}
		fired = append(fired, a)
	}
}

// Close tears the viewer down. Any autoplay session is dropped regardless of
// whether the caller disabled it first.
func (v *Viewer) Close() {
	v.autoplay = nil
}

// State returns a snapshot for renderers.
func (v *Viewer) State() domain.ViewState {
	st := domain.ViewState{
		DeckID:   v.deckID,
		DeckName: v.deckName,
		Cursor:   v.cursor,
		Flip:     v.flip,
		Shuffled: v.deck.Shuffled(),
		Autoplay: domain.AutoplayState{Phase: domain.PhaseIdle},
	}
	active := v.deck.Active()
	if c, ok := v.Current(); ok {
		st.Card = &c
		st.Progress = domain.ProgressOf(active, c.ID)
	} else {
		st.Progress = domain.Progress{Total: len(active)}
	}
	if v.autoplay != nil {
		st.Autoplay = domain.AutoplayState{
			Enabled:   true,
			Countdown: v.autoplay.Countdown(),
			Phase:     v.autoplay.Phase(),
		}
	}
	return st
}

func (v *Viewer) advance() {
	if v.deck.Len() == 0 {
		return
	}
	v.flip.Reset()
	v.cursor = domain.Advance(v.cursor, v.deck.Len())
}

func (v *Viewer) interacted(p domain.Phase, now time.Time) {
	if v.autoplay != nil && v.opts.RestartOnInteraction {
		v.autoplay.Restart(p, now)
	}
}
