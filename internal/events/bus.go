// Package events provides a publish-subscribe bus for viewer state snapshots.
package events

import (
	"sync"

	"github.com/randomtoy/flipdeck/internal/domain"
)

const subBufferSize = 8

// Bus is a non-blocking publish-subscribe event bus.
// Subscribers that are slow to consume snapshots have them dropped rather
// than blocking the viewer loop.
type Bus struct {
	mu     sync.Mutex
	subs   map[string]chan domain.ViewState
	closed bool
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]chan domain.ViewState),
	}
}

// Subscribe creates a subscription with the given ID. The channel is closed
// by Unsubscribe or Close. Subscribing to a closed bus returns a closed channel.
func (b *Bus) Subscribe(id string) <-chan domain.ViewState {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan domain.ViewState, subBufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	if old, ok := b.subs[id]; ok {
		close(old)
	}
	b.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends a snapshot to all subscribers.
// If a subscriber's channel is full, the snapshot is dropped.
func (b *Bus) Publish(state domain.ViewState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// Close unsubscribes everyone. Later subscriptions are closed immediately.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.closed = true
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
