package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

func TestBusEmitSynchronousOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(EventTypeBetsChanged, func(ctx context.Context, event Event) {
		order = append(order, "first")
	})
	bus.Subscribe(EventTypeBetsChanged, func(ctx context.Context, event Event) {
		order = append(order, "second")
	})

	bus.Emit(context.Background(), BetsChangedEvent{Action: "add", BetCount: 1})

	// Synchronous dispatch means handler effects are visible immediately
	// after Emit returns, in subscription order.
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBusEmitDeliversPayload(t *testing.T) {
	bus := NewBus()

	var received SettlementComputedEvent
	bus.Subscribe(EventTypeSettlementComputed, func(ctx context.Context, event Event) {
		settlementEvent, ok := event.(SettlementComputedEvent)
		require.True(t, ok)
		received = settlementEvent
	})

	bus.Emit(context.Background(), SettlementComputedEvent{
		Date:      "2026-01-15",
		Role:      models.RoleOwner,
		NetProfit: -1372500,
		BetCount:  2,
	})

	assert.Equal(t, "2026-01-15", received.Date)
	assert.Equal(t, models.RoleOwner, received.Role)
	assert.Equal(t, 2, received.BetCount)
}

func TestBusEmitRoutesByType(t *testing.T) {
	bus := NewBus()

	var drawEvents int
	bus.Subscribe(EventTypeDrawFetched, func(ctx context.Context, event Event) {
		drawEvents++
	})

	bus.Emit(context.Background(), RatesUpdatedEvent{Kind: models.KindPair})
	assert.Equal(t, 0, drawEvents)

	bus.Emit(context.Background(), DrawFetchedEvent{Date: "2026-01-15"})
	assert.Equal(t, 1, drawEvents)
}

func TestBusPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var survived bool
	bus.Subscribe(EventTypeBetsChanged, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeBetsChanged, func(ctx context.Context, event Event) {
		survived = true
	})

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), BetsChangedEvent{Action: "clear"})
	})
	assert.True(t, survived)
}

func TestBusEmitWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), BetsChangedEvent{Action: "add"})
	})
}
