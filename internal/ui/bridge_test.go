package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/eventbus"
)

func TestForwardDeliversUIEvents(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan tea.Msg, 4)
	stop := Forward(bus, func(msg tea.Msg) { got <- msg })

	bus.Publish(eventbus.CartRefreshRequestedEvent{})
	bus.Publish(eventbus.LoggedInEvent{Username: "ana"})

	select {
	case msg := <-got:
		ev, ok := msg.(EventMsg)
		require.True(t, ok)
		assert.Equal(t, eventbus.LoggedInEvent{Username: "ana"}, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded")
	}

	stop()
	bus.Publish(eventbus.LoggedOutEvent{})
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, got, 0)
}
