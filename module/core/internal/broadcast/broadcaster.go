// Package broadcast fans published vehicle updates out to live subscriber
// channels. One broadcaster instance owns the subscriber set; the mutex is
// the only synchronization in the tracking core.
package broadcast

import (
	"sync"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

const defaultBuffer = 16

// Broadcaster maintains the set of open subscriber channels. A subscriber
// that cannot accept a delivery (full buffer, gone consumer) is closed and
// removed on that send; there is no resurrection and no replay of history.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[uint64]chan domain.VehicleUpdate
	nextID      uint64
	buffer      int
	closed      bool
}

func New(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broadcaster{
		subscribers: make(map[uint64]chan domain.VehicleUpdate),
		buffer:      buffer,
	}
}

// Subscribe registers a new channel eligible for every subsequently
// published update. The returned id is the handle for Unsubscribe.
func (b *Broadcaster) Subscribe() (uint64, <-chan domain.VehicleUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.VehicleUpdate, b.buffer)
	if b.closed {
		close(ch)
		return 0, ch
	}

	b.nextID++
	id := b.nextID
	b.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscriber. Idempotent: unknown or
// already-removed ids are a no-op.
func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return
	}
	delete(b.subscribers, id)
	close(ch)
}

// Publish delivers the update to every subscriber without blocking. A
// subscriber whose buffer is full is dropped so one slow consumer never
// delays the rest.
func (b *Broadcaster) Publish(update domain.VehicleUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for id, ch := range b.subscribers {
		select {
		case ch <- update:
		default:
			delete(b.subscribers, id)
			close(ch)
		}
	}
}

// Len reports the current number of subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close shuts the broadcaster down, closing every subscriber channel.
// Subsequent Subscribe calls return an already-closed channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
