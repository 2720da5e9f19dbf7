package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lodebook/events"
	"lodebook/models"
	"lodebook/settlement"
)

// SettlementService settles the current ledger against a draw. Draws come
// from storage when already fetched, otherwise from the remote provider.
type SettlementService struct {
	ledger   *LedgerService
	rates    *RateService
	draws    DrawStore
	provider DrawProvider
	bus      *events.Bus
}

// NewSettlementService creates a new settlement service
func NewSettlementService(ledger *LedgerService, rates *RateService, draws DrawStore, provider DrawProvider, bus *events.Bus) *SettlementService {
	return &SettlementService{
		ledger:   ledger,
		rates:    rates,
		draws:    draws,
		provider: provider,
		bus:      bus,
	}
}

// Settle computes the settlement of the current ledger for the given draw
// date and role.
func (s *SettlementService) Settle(ctx context.Context, date string, role models.Role) (*models.SettlementResult, error) {
	draw, err := s.getDraw(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.settleAgainst(ctx, draw, role)
}

// SettleLatest settles against the most recent published draw.
func (s *SettlementService) SettleLatest(ctx context.Context, role models.Role) (*models.SettlementResult, error) {
	draw, err := s.provider.FetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest draw: %w", err)
	}

	if err := s.draws.Upsert(ctx, draw); err != nil {
		return nil, err
	}
	s.bus.Emit(ctx, events.DrawFetchedEvent{Date: draw.Date})

	return s.settleAgainst(ctx, draw, role)
}

// GetDraw returns the draw for a date, fetching and storing it if needed.
func (s *SettlementService) GetDraw(ctx context.Context, date string) (*models.DrawResult, error) {
	return s.getDraw(ctx, date)
}

// GetLatestDraw fetches and stores the most recent published draw.
func (s *SettlementService) GetLatestDraw(ctx context.Context) (*models.DrawResult, error) {
	draw, err := s.provider.FetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest draw: %w", err)
	}

	if err := s.draws.Upsert(ctx, draw); err != nil {
		return nil, err
	}
	s.bus.Emit(ctx, events.DrawFetchedEvent{Date: draw.Date})

	return draw, nil
}

func (s *SettlementService) settleAgainst(ctx context.Context, draw *models.DrawResult, role models.Role) (*models.SettlementResult, error) {
	rates, err := s.rates.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	bets := s.ledger.Bets()
	result, err := settlement.Settle(bets, draw, rates, role)
	if err != nil {
		return nil, err
	}

	s.bus.Emit(ctx, events.SettlementComputedEvent{
		Date:      result.Date,
		Role:      role,
		NetProfit: result.NetProfit,
		BetCount:  len(bets),
	})

	log.WithFields(log.Fields{
		"date":      result.Date,
		"role":      role,
		"betCount":  len(bets),
		"netProfit": result.NetProfit,
	}).Info("Settlement computed")

	return result, nil
}

func (s *SettlementService) getDraw(ctx context.Context, date string) (*models.DrawResult, error) {
	stored, err := s.draws.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}

	draw, err := s.provider.FetchResult(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draw for %s: %w", date, err)
	}

	if err := s.draws.Upsert(ctx, draw); err != nil {
		return nil, err
	}
	s.bus.Emit(ctx, events.DrawFetchedEvent{Date: draw.Date})

	return draw, nil
}
