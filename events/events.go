package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"lodebook/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetsChanged        EventType = "bets_changed"
	EventTypeSettlementComputed EventType = "settlement_computed"
	EventTypeRatesUpdated       EventType = "rates_updated"
	EventTypeDrawFetched        EventType = "draw_fetched"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetsChangedEvent fires after any mutation of the bet ledger, including
// undo and redo.
type BetsChangedEvent struct {
	Action   string
	BetCount int
}

func (e BetsChangedEvent) Type() EventType {
	return EventTypeBetsChanged
}

// SettlementComputedEvent fires after a settlement run completes.
type SettlementComputedEvent struct {
	Date      string
	Role      models.Role
	NetProfit float64
	BetCount  int
}

func (e SettlementComputedEvent) Type() EventType {
	return EventTypeSettlementComputed
}

// RatesUpdatedEvent fires after the rate table changes.
type RatesUpdatedEvent struct {
	Kind models.BetKind
}

func (e RatesUpdatedEvent) Type() EventType {
	return EventTypeRatesUpdated
}

// DrawFetchedEvent fires after a draw result is fetched from the provider
// and stored.
type DrawFetchedEvent struct {
	Date      string
	FromCache bool
}

func (e DrawFetchedEvent) Type() EventType {
	return EventTypeDrawFetched
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching. Dispatch is synchronous
// and in subscription order, so a handler observes storage state from after
// the mutation that emitted the event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers in subscription order.
// A panicking handler is logged and does not stop the remaining handlers.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	for i, handler := range handlers {
		b.dispatch(ctx, event, handler, i)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, handler Handler, index int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": index,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	handler(ctx, event)
}
