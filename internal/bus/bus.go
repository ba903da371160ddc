// Package bus provides in-process change notification between independent
// surfaces reading the same collections. Publishes are deferred to a
// delivery goroutine so a batch of writes settles in the store before any
// handler re-reads, and they carry no payload.
package bus

import (
	"sync"
	"sync/atomic"
)

// Token identifies a publisher. Subscribers registered with the same token
// skip notifications that writer published about itself, while still
// receiving notifications from other writers.
type Token uint64

// Handler is invoked on the delivery goroutine. It must treat the call as a
// hint to re-query, not as a data carrier.
type Handler func()

type subscriber struct {
	id      uint64
	token   Token
	handler Handler
}

type event struct {
	topic string
	from  Token
}

// Bus is a process-wide topic bus. The zero value is not usable; construct
// with New and release with Close.
type Bus struct {
	mu     sync.Mutex
	subs   map[string][]subscriber
	nextID uint64

	events chan event
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool

	tokens atomic.Uint64
}

// New creates a Bus and starts its delivery goroutine.
func New() *Bus {
	b := &Bus{
		subs:   make(map[string][]subscriber),
		events: make(chan event, 64),
		done:   make(chan struct{}),
	}
	b.wg.Add(1)
	go b.deliver()
	return b
}

// NewToken returns a fresh publisher identity.
func (b *Bus) NewToken() Token {
	return Token(b.tokens.Add(1))
}

// Subscribe registers a handler for a topic and returns its unsubscribe
// function. A zero token receives everything; a publisher's own token
// suppresses self-triggered notifications.
func (b *Bus) Subscribe(topic string, token Token, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, token: token, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish queues a fire-and-forget notification for topic. It never blocks
// the writer: if the queue is full the event is dropped, which is safe
// because handlers re-query rather than consume payloads.
func (b *Bus) Publish(topic string) {
	b.PublishFrom(topic, 0)
}

// PublishFrom queues a notification tagged with the publisher's token.
func (b *Bus) PublishFrom(topic string, from Token) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}

	select {
	case b.events <- event{topic: topic, from: from}:
	default:
	}
}

func (b *Bus) deliver() {
	defer b.wg.Done()
	for {
		select {
		case ev := <-b.events:
			b.dispatch(ev)
		case <-b.done:
			// Drain queued events before exiting
			for {
				select {
				case ev := <-b.events:
					b.dispatch(ev)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) dispatch(ev event) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[ev.topic]))
	copy(list, b.subs[ev.topic])
	b.mu.Unlock()

	for _, s := range list {
		if ev.from != 0 && s.token == ev.from {
			continue
		}
		s.handler()
	}
}

// Close stops delivery after draining queued events.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
}
