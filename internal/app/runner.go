package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/randomtoy/flipdeck/internal/domain"
	"github.com/randomtoy/flipdeck/internal/events"
)

// opState reads a snapshot without changing the viewer, so it is not published.
const opState = "state"

type result struct {
	state domain.ViewState
	err   error
}

type request struct {
	op    string
	fn    func(v *Viewer, now time.Time) error
	reply chan result
}

// Runner owns a Viewer and is the only goroutine that touches it. User
// commands and autoplay deadlines are serialized through one select loop
// that keeps a single timer armed for the viewer's next deadline. When
// autoplay is disabled the viewer reports no deadline, so the loop simply
// stops waiting for one.
type Runner struct {
	id     string
	viewer *Viewer
	bus    *events.Bus
	logger *slog.Logger
	now    func() time.Time
	seq    uint64
	reqs   chan request
	done   chan struct{}
}

func NewRunner(id string, v *Viewer, logger *slog.Logger) *Runner {
	return &Runner{
		id:     id,
		viewer: v,
		bus:    events.NewBus(),
		logger: logger.With("viewer_id", id),
		now:    time.Now,
		reqs:   make(chan request),
		done:   make(chan struct{}),
	}
}

func (r *Runner) ID() string { return r.id }

// Done is closed once Run has returned and the viewer is torn down.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Run processes commands and autoplay events until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	defer close(r.done)
	defer r.bus.Close()
	defer timer.Stop()
	defer r.viewer.Close()

	for {
		r.arm(timer)
		select {
		case <-ctx.Done():
			r.logger.Debug("viewer torn down")
			return

		case req := <-r.reqs:
			err := req.fn(r.viewer, r.now())
			changed := err == nil && req.op != opState
			if changed {
				r.seq++
			}
			st := r.state()
			req.reply <- result{state: st, err: err}
			if err != nil {
				r.logger.Warn("viewer command failed", "op", req.op, "error", err)
				continue
			}
			if !changed {
				continue
			}
			r.logger.Debug("viewer command", "op", req.op, "cursor", st.Cursor, "orientation", st.Flip.Orientation)
			r.publish(st)

		case <-timer.C:
			fired := r.viewer.Elapse(r.now())
			if len(fired) == 0 {
				continue
			}
			r.seq++
			st := r.state()
			for _, a := range fired {
				if a != domain.ActionTick {
					r.logger.Debug("autoplay", "action", a.String(), "cursor", st.Cursor)
				}
			}
			r.publish(st)
		}
	}
}

func (r *Runner) publish(st domain.ViewState) {
	r.bus.Publish(st)
	r.logger.Debug("state published", "seq", st.Seq, "subscribers", r.bus.SubscriberCount())
}

// arm points the timer at the viewer's next deadline, or stops it.
func (r *Runner) arm(timer *time.Timer) {
	at, ok := r.viewer.NextDeadline()
	if !ok {
		timer.Stop()
		return
	}
	timer.Reset(max(at.Sub(r.now()), 0))
}

func (r *Runner) state() domain.ViewState {
	st := r.viewer.State()
	st.ViewerID = r.id
	st.Seq = r.seq
	return st
}

// Subscribe streams a snapshot after every change. The channel is closed
// by Unsubscribe or when the runner stops.
func (r *Runner) Subscribe(subID string) <-chan domain.ViewState {
	return r.bus.Subscribe(subID)
}

func (r *Runner) Unsubscribe(subID string) {
	r.bus.Unsubscribe(subID)
}

func (r *Runner) State(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, opState, func(*Viewer, time.Time) error { return nil })
}

func (r *Runner) Next(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, "next", func(v *Viewer, now time.Time) error {
		v.Next(now)
		return nil
	})
}

func (r *Runner) Prev(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, "prev", func(v *Viewer, now time.Time) error {
		v.Prev(now)
		return nil
	})
}

func (r *Runner) Flip(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, "flip", func(v *Viewer, now time.Time) error {
		v.Flip(now)
		return nil
	})
}

func (r *Runner) Shuffle(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, "shuffle", func(v *Viewer, now time.Time) error {
		v.Shuffle(now)
		return nil
	})
}

func (r *Runner) SetAutoplay(ctx context.Context, enabled bool) (domain.ViewState, error) {
	return r.exec(ctx, "autoplay", func(v *Viewer, now time.Time) error {
		v.SetAutoplay(enabled, now)
		return nil
	})
}

func (r *Runner) ToggleAutoplay(ctx context.Context) (domain.ViewState, error) {
	return r.exec(ctx, "autoplay_toggle", func(v *Viewer, now time.Time) error {
		v.ToggleAutoplay(now)
		return nil
	})
}

func (r *Runner) Load(ctx context.Context, cards []domain.Card) (domain.ViewState, error) {
	return r.exec(ctx, "load", func(v *Viewer, _ time.Time) error {
		return v.Load(cards)
	})
}

func (r *Runner) exec(ctx context.Context, op string, fn func(*Viewer, time.Time) error) (domain.ViewState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ViewState{}, err
	}
	req := request{op: op, fn: fn, reply: make(chan result, 1)}
	select {
	case r.reqs <- req:
	case <-r.done:
		return domain.ViewState{}, domain.ErrViewerClosed
	case <-ctx.Done():
		return domain.ViewState{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.state, res.err
	case <-ctx.Done():
		return domain.ViewState{}, ctx.Err()
	}
}
