package bus

import (
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestPublishDelivers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan struct{}, 1)
	b.Subscribe("topic-a", 0, func() {
		got <- struct{}{}
	})

	b.Publish("topic-a")
	waitFor(t, got, "delivery")
}

func TestPublishTopicIsolation(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	calls := map[string]int{}
	done := make(chan struct{}, 4)
	for _, topic := range []string{"a", "b"} {
		topic := topic
		b.Subscribe(topic, 0, func() {
			mu.Lock()
			calls[topic]++
			mu.Unlock()
			done <- struct{}{}
		})
	}

	b.Publish("a")
	waitFor(t, done, "topic a delivery")

	mu.Lock()
	defer mu.Unlock()
	if calls["a"] != 1 {
		t.Errorf("topic a delivered %d times, want 1", calls["a"])
	}
	if calls["b"] != 0 {
		t.Errorf("topic b delivered %d times, want 0", calls["b"])
	}
}

func TestPublishFromSuppressesOwnToken(t *testing.T) {
	b := New()
	defer b.Close()

	writer := b.NewToken()

	selfCalls := make(chan struct{}, 8)
	otherCalls := make(chan struct{}, 8)
	b.Subscribe("topic", writer, func() { selfCalls <- struct{}{} })
	b.Subscribe("topic", 0, func() { otherCalls <- struct{}{} })

	// The writer's own publish reaches only the other subscriber
	b.PublishFrom("topic", writer)
	waitFor(t, otherCalls, "other subscriber")

	select {
	case <-selfCalls:
		t.Error("writer received its own notification")
	case <-time.After(100 * time.Millisecond):
	}

	// A foreign publish reaches the writer too
	b.Publish("topic")
	waitFor(t, selfCalls, "writer on foreign publish")
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	first := make(chan struct{}, 8)
	second := make(chan struct{}, 8)
	unsub := b.Subscribe("topic", 0, func() { first <- struct{}{} })
	b.Subscribe("topic", 0, func() { second <- struct{}{} })

	b.Publish("topic")
	waitFor(t, first, "first handler")
	waitFor(t, second, "second handler")

	unsub()
	b.Publish("topic")
	waitFor(t, second, "second handler after unsubscribe")

	select {
	case <-first:
		t.Error("unsubscribed handler was called")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseDrainsQueuedEvents(t *testing.T) {
	b := New()

	var mu sync.Mutex
	delivered := 0
	b.Subscribe("topic", 0, func() {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	const n = 10
	for i := 0; i < n; i++ {
		b.Publish("topic")
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	if delivered != n {
		t.Errorf("delivered %d events after close, want %d", delivered, n)
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := New()
	b.Close()

	// Must not panic or block
	b.Publish("topic")
	b.Close()
}

func TestPublisherCarriesToken(t *testing.T) {
	b := New()
	defer b.Close()

	p := NewPublisher(b)

	self := make(chan struct{}, 1)
	other := make(chan struct{}, 1)
	b.Subscribe("topic", p.Token(), func() { self <- struct{}{} })
	b.Subscribe("topic", 0, func() { other <- struct{}{} })

	p.Publish("topic")
	waitFor(t, other, "untagged subscriber")

	select {
	case <-self:
		t.Error("publisher's own subscriber was notified")
	case <-time.After(100 * time.Millisecond):
	}
}
