package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lodebook/events"
	"lodebook/models"
)

// RateService manages the payout rate table. Unconfigured kinds fall back
// to the conventional defaults, so a fresh install settles correctly with
// no setup.
type RateService struct {
	store RateStore
	bus   *events.Bus
}

// NewRateService creates a new rate service
func NewRateService(store RateStore, bus *events.Bus) *RateService {
	return &RateService{store: store, bus: bus}
}

// GetRates returns the effective rate table: stored rates where configured,
// defaults everywhere else.
func (s *RateService) GetRates(ctx context.Context) (*models.RateTable, error) {
	stored, err := s.store.GetRateTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}

	defaults := models.DefaultRateTable()
	if stored.Pair == nil {
		stored.Pair = defaults.Pair
	}
	if stored.Special == nil {
		stored.Special = defaults.Special
	}
	if stored.Combination == nil {
		stored.Combination = defaults.Combination
	}
	if stored.Triple == nil {
		stored.Triple = defaults.Triple
	}

	if err := stored.Validate(); err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateRates validates and persists a new rate table.
func (s *RateService) UpdateRates(ctx context.Context, table *models.RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}

	if err := s.store.SaveRateTable(ctx, table); err != nil {
		return fmt.Errorf("failed to save rates: %w", err)
	}

	for _, kind := range models.Kinds {
		s.bus.Emit(ctx, events.RatesUpdatedEvent{Kind: kind})
	}
	log.Info("Rate table updated")
	return nil
}

// UpdateKindRate replaces the rate for one single-multiplier kind.
func (s *RateService) UpdateKindRate(ctx context.Context, kind models.BetKind, rate models.Rate) error {
	table, err := s.GetRates(ctx)
	if err != nil {
		return err
	}

	switch kind {
	case models.KindPair:
		table.Pair = &rate
	case models.KindSpecial:
		table.Special = &rate
	case models.KindTriple:
		table.Triple = &rate
	default:
		return &models.ValidationError{Field: "kind", Message: fmt.Sprintf("cannot set a single rate for kind %q", kind)}
	}

	if err := table.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveRateTable(ctx, table); err != nil {
		return fmt.Errorf("failed to save rates: %w", err)
	}

	s.bus.Emit(ctx, events.RatesUpdatedEvent{Kind: kind})
	log.WithField("kind", kind).Info("Rate updated")
	return nil
}
