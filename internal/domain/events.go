package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError                EventType = "Error"
	EventCartAddRequested     EventType = "CartAddRequested"
	EventCartUpdateRequested  EventType = "CartUpdateRequested"
	EventCartRemoveRequested  EventType = "CartRemoveRequested"
	EventCartRefreshRequested EventType = "CartRefreshRequested"
	EventCartUpdated          EventType = "CartUpdated"
	EventLoggedIn             EventType = "LoggedIn"
	EventLoggedOut            EventType = "LoggedOut"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// CartAddRequestedEvent asks the cart manager to add an item
type CartAddRequestedEvent struct {
	ItemID   int
	Quantity int
}

func (e CartAddRequestedEvent) Type() EventType { return EventCartAddRequested }

// CartUpdateRequestedEvent asks the cart manager to change a line's quantity
type CartUpdateRequestedEvent struct {
	ItemID   int
	Quantity int
}

func (e CartUpdateRequestedEvent) Type() EventType { return EventCartUpdateRequested }

// CartRemoveRequestedEvent asks the cart manager to drop an item
type CartRemoveRequestedEvent struct {
	ItemID int
}

func (e CartRemoveRequestedEvent) Type() EventType { return EventCartRemoveRequested }

// CartRefreshRequestedEvent asks the cart manager to re-read the cart
type CartRefreshRequestedEvent struct{}

func (e CartRefreshRequestedEvent) Type() EventType { return EventCartRefreshRequested }

// CartUpdatedEvent carries the cart contents after any successful cart operation
type CartUpdatedEvent struct {
	Lines   []CartLine
	Message string // user-facing summary of the operation, may be empty
}

func (e CartUpdatedEvent) Type() EventType { return EventCartUpdated }

// LoggedInEvent is emitted after credentials are stored
type LoggedInEvent struct {
	Username string
}

func (e LoggedInEvent) Type() EventType { return EventLoggedIn }

// LoggedOutEvent is emitted after credentials are cleared
type LoggedOutEvent struct{}

func (e LoggedOutEvent) Type() EventType { return EventLoggedOut }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	APIBaseURL string
	PageSize   int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
