package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventCartRemoveRequested, func(e DomainEvent) { got <- e })
	b.Subscribe(EventCartRemoveRequested, func(e DomainEvent) { got <- e })

	b.Publish(CartRemoveRequestedEvent{ItemID: 7})

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			ev, ok := e.(CartRemoveRequestedEvent)
			require.True(t, ok)
			assert.Equal(t, 7, ev.ItemID)
		case <-time.After(time.Second):
			t.Fatal("handler was not called")
		}
	}
}

func TestSubscribeOnlyReceivesItsType(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	var seen []EventType
	done := make(chan struct{})
	b.Subscribe(EventLoggedOut, func(e DomainEvent) {
		mu.Lock()
		seen = append(seen, e.Type())
		mu.Unlock()
		close(done)
	})

	b.Publish(LoggedInEvent{Username: "ana"})
	b.Publish(LoggedOutEvent{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{EventLoggedOut}, seen)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventCartUpdated, func(DomainEvent) { calls <- struct{}{} })
	marker := make(chan struct{}, 4)
	b.Subscribe(EventCartUpdated, func(DomainEvent) { marker <- struct{}{} })

	unsubscribe()
	b.Publish(CartUpdatedEvent{})

	select {
	case <-marker:
	case <-time.After(time.Second):
		t.Fatal("remaining handler was not called")
	}
	assert.Len(t, calls, 0)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(nil)
	defer b.Close()

	ok := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { close(ok) })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	called := make(chan struct{}, 1)
	b.Subscribe(EventLoggedOut, func(DomainEvent) { called <- struct{}{} })
	b.Close()
	b.Close()

	b.Publish(LoggedOutEvent{})
	assert.Len(t, called, 0)
}
