package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pantry/internal/eventbus"
)

var forwardedEvents = []eventbus.EventType{
	eventbus.EventCartUpdated,
	eventbus.EventError,
	eventbus.EventLoggedIn,
	eventbus.EventLoggedOut,
}

// Forward delivers the bus events the UI renders to send, usually
// (*tea.Program).Send. The returned func unsubscribes.
func Forward(bus eventbus.EventBus, send func(tea.Msg)) func() {
	unsubscribers := make([]func(), 0, len(forwardedEvents))
	for _, t := range forwardedEvents {
		unsubscribers = append(unsubscribers, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			send(EventMsg{Event: e})
		}))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
