// Package cart keeps the signed-in user's cart in sync with the API. It is
// driven by Cart*Requested events and answers with CartUpdated or Error.
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"pantry/internal/api"
	"pantry/internal/domain"
	"pantry/internal/eventbus"
)

const (
	defaultTimeout = 15 * time.Second

	// NotLoggedInMessage is shown when a cart operation has no valid session
	NotLoggedInMessage = "Log in to use the cart (pantry login USER)."
)

// API is the slice of the storefront client the manager needs
type API interface {
	ListCart(ctx context.Context) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, itemID, quantity int) error
	UpdateCartItem(ctx context.Context, itemID, quantity int) error
	RemoveFromCart(ctx context.Context, itemID int) error
}

// Manager handles cart operations
type Manager interface {
	Refresh(ctx context.Context) ([]domain.CartLine, error)
	Lines() []domain.CartLine
	Count() int
	Close()
}

// manager is the concrete implementation
type manager struct {
	bus     eventbus.EventBus
	api     API
	logger  *zap.Logger
	timeout time.Duration

	mu    sync.RWMutex
	lines []domain.CartLine

	ops         chan struct{} // one cart mutation at a time
	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe []func()

	closeMu sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

// NewManager creates a cart manager subscribed to bus
func NewManager(bus eventbus.EventBus, client API, logger *zap.Logger) Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &manager{
		bus:     bus,
		api:     client,
		logger:  logger.Named("cart"),
		timeout: defaultTimeout,
		ops:     make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}

	m.subscribe(eventbus.EventCartAddRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CartAddRequestedEvent); ok {
			m.mutate("add", func(ctx context.Context) (string, error) {
				qty := event.Quantity
				if qty < 1 {
					qty = 1
				}
				if err := m.api.AddToCart(ctx, event.ItemID, qty); err != nil {
					return "", err
				}
				return "Item added to cart", nil
			})
		}
	})

	m.subscribe(eventbus.EventCartUpdateRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CartUpdateRequestedEvent); ok {
			m.mutate("update", func(ctx context.Context) (string, error) {
				if event.Quantity < 1 {
					if err := m.api.RemoveFromCart(ctx, event.ItemID); err != nil {
						return "", err
					}
					return "Item removed from cart", nil
				}
				if err := m.api.UpdateCartItem(ctx, event.ItemID, event.Quantity); err != nil {
					return "", err
				}
				return "Cart item updated", nil
			})
		}
	})

	m.subscribe(eventbus.EventCartRemoveRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CartRemoveRequestedEvent); ok {
			m.mutate("remove", func(ctx context.Context) (string, error) {
				if err := m.api.RemoveFromCart(ctx, event.ItemID); err != nil {
					return "", err
				}
				return "Item removed from cart", nil
			})
		}
	})

	refresh := func(eventbus.DomainEvent) {
		m.mutate("refresh", func(context.Context) (string, error) { return "", nil })
	}
	m.subscribe(eventbus.EventCartRefreshRequested, refresh)
	m.subscribe(eventbus.EventLoggedIn, refresh)

	m.subscribe(eventbus.EventLoggedOut, func(eventbus.DomainEvent) {
		m.setLines(nil)
		m.bus.Publish(eventbus.CartUpdatedEvent{Message: "Logged out"})
	})

	return m
}

func (m *manager) subscribe(t eventbus.EventType, h eventbus.EventHandler) {
	m.unsubscribe = append(m.unsubscribe, m.bus.Subscribe(t, h))
}

// mutate runs op, re-reads the cart and publishes the result. The bus already
// calls handlers on their own goroutines.
func (m *manager) mutate(name string, op func(ctx context.Context) (string, error)) {
	if !m.begin() {
		return
	}
	defer m.wg.Done()

	select {
	case m.ops <- struct{}{}:
		defer func() { <-m.ops }()
	case <-m.ctx.Done():
		return
	}

	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	msg, err := op(ctx)
	if err == nil {
		_, err = m.Refresh(ctx)
	}
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		m.logger.Warn("cart operation failed", zap.String("op", name), zap.Error(err))
		m.bus.Publish(eventbus.ErrorEvent{Message: errorMessage(name, err), Err: err})
		return
	}

	m.logger.Debug("cart operation done", zap.String("op", name), zap.Int("lines", m.Count()))
	m.bus.Publish(eventbus.CartUpdatedEvent{Lines: m.Lines(), Message: msg})
}

func (m *manager) begin() bool {
	m.closeMu.Lock()
	defer m.closeMu.Unlock()
	if m.closed {
		return false
	}
	m.wg.Add(1)
	return true
}

func errorMessage(op string, err error) string {
	switch {
	case api.IsUnauthorized(err):
		return NotLoggedInMessage
	case api.IsNotFound(err):
		return "Item not found in cart."
	default:
		return fmt.Sprintf("Cart %s failed. Please try again.", op)
	}
}

// Refresh re-reads the cart from the API
func (m *manager) Refresh(ctx context.Context) ([]domain.CartLine, error) {
	lines, err := m.api.ListCart(ctx)
	if err != nil {
		return nil, err
	}
	m.setLines(lines)
	return m.Lines(), nil
}

func (m *manager) setLines(lines []domain.CartLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = lines
}

// Lines returns a copy of the last known cart
func (m *manager) Lines() []domain.CartLine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// Count is the total quantity across all lines
func (m *manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, l := range m.lines {
		n += l.Quantity
	}
	return n
}

// Close unsubscribes, cancels in-flight calls and waits for them
func (m *manager) Close() {
	m.closeMu.Lock()
	if m.closed {
		m.closeMu.Unlock()
		return
	}
	m.closed = true
	m.closeMu.Unlock()

	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.cancel()
	m.wg.Wait()
}
