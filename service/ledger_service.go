package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lodebook/events"
	"lodebook/ledger"
	"lodebook/models"
	"lodebook/parser"
)

// LedgerService coordinates the in-memory ledger with persistence and the
// event bus. The ledger is authoritative; after every successful mutation
// the full list is written through to the store.
type LedgerService struct {
	ledger *ledger.Ledger
	parser *parser.Parser
	store  BetStore
	bus    *events.Bus
}

// ParseOutcome reports what a free-text entry produced: the bets recorded,
// the lines that failed to parse, and the parsed bets the ledger rejected.
type ParseOutcome struct {
	Added       []models.Bet
	ParseErrors []parser.LineError
	ItemErrors  []ledger.ItemError
}

// NewLedgerService creates a new ledger service
func NewLedgerService(l *ledger.Ledger, p *parser.Parser, store BetStore, bus *events.Bus) *LedgerService {
	return &LedgerService{
		ledger: l,
		parser: p,
		store:  store,
		bus:    bus,
	}
}

// Restore loads persisted bets into the ledger. Call it once at startup.
func (s *LedgerService) Restore(ctx context.Context) error {
	bets, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore ledger: %w", err)
	}

	s.ledger.Load(bets)
	log.WithField("betCount", len(bets)).Info("Restored ledger from storage")
	return nil
}

// ParseAndAdd parses free-text bet lines and records the valid ones. Bad
// lines and rejected bets are reported without aborting the rest.
func (s *LedgerService) ParseAndAdd(ctx context.Context, text string) (*ParseOutcome, error) {
	parsed := s.parser.Parse(text)

	outcome := &ParseOutcome{ParseErrors: parsed.Errors}
	if len(parsed.Bets) > 0 {
		bulk := s.ledger.BulkAdd(parsed.Bets)
		outcome.Added = bulk.Added
		outcome.ItemErrors = bulk.Errors

		if len(bulk.Added) > 0 {
			if err := s.persist(ctx, "bulk-add"); err != nil {
				return nil, err
			}
		}
	}

	log.WithFields(log.Fields{
		"added":       len(outcome.Added),
		"parseErrors": len(outcome.ParseErrors),
		"itemErrors":  len(outcome.ItemErrors),
	}).Info("Parsed bet entry")

	return outcome, nil
}

// AddBet validates and records a single bet.
func (s *LedgerService) AddBet(ctx context.Context, candidate models.Bet) (models.Bet, error) {
	bet, err := s.ledger.Add(candidate)
	if err != nil {
		return models.Bet{}, err
	}

	if err := s.persist(ctx, "add"); err != nil {
		return models.Bet{}, err
	}
	return bet, nil
}

// UpdateBet applies a patch to an existing bet.
func (s *LedgerService) UpdateBet(ctx context.Context, id string, patch ledger.Patch) (models.Bet, error) {
	bet, err := s.ledger.Update(id, patch)
	if err != nil {
		return models.Bet{}, err
	}

	if err := s.persist(ctx, "update"); err != nil {
		return models.Bet{}, err
	}
	return bet, nil
}

// RemoveBet deletes a bet by id.
func (s *LedgerService) RemoveBet(ctx context.Context, id string) (models.Bet, error) {
	bet, err := s.ledger.Remove(id)
	if err != nil {
		return models.Bet{}, err
	}

	if err := s.persist(ctx, "remove"); err != nil {
		return models.Bet{}, err
	}
	return bet, nil
}

// Clear removes every bet.
func (s *LedgerService) Clear(ctx context.Context) error {
	s.ledger.Clear()
	return s.persist(ctx, "clear")
}

// Undo reverts the most recent mutation. It returns false when there is
// nothing to undo.
func (s *LedgerService) Undo(ctx context.Context) (bool, error) {
	if !s.ledger.Undo() {
		return false, nil
	}

	if err := s.writeThrough(ctx, "undo"); err != nil {
		// put the ledger back in sync with storage
		s.ledger.Redo()
		return false, err
	}
	return true, nil
}

// Redo re-applies the most recently undone mutation.
func (s *LedgerService) Redo(ctx context.Context) (bool, error) {
	if !s.ledger.Redo() {
		return false, nil
	}

	if err := s.writeThrough(ctx, "redo"); err != nil {
		s.ledger.Undo()
		return false, err
	}
	return true, nil
}

// Bets returns a snapshot of the current ledger.
func (s *LedgerService) Bets() []models.Bet {
	return s.ledger.Bets()
}

// GetBet returns the bet with the given id.
func (s *LedgerService) GetBet(id string) (models.Bet, bool) {
	return s.ledger.Get(id)
}

// Len returns the number of bets in the ledger.
func (s *LedgerService) Len() int {
	return s.ledger.Len()
}

// History returns the most recent ledger actions, newest first.
func (s *LedgerService) History(limit int) []ledger.HistoryEntry {
	return s.ledger.History(limit)
}

// Statistics returns per-kind counts and stake totals.
func (s *LedgerService) Statistics() map[models.BetKind]ledger.KindStats {
	return s.ledger.Statistics()
}

// persist writes the ledger through to storage, rolling the in-memory
// mutation back when the write fails.
func (s *LedgerService) persist(ctx context.Context, action string) error {
	if err := s.writeThrough(ctx, action); err != nil {
		s.ledger.Undo()
		return err
	}
	return nil
}

func (s *LedgerService) writeThrough(ctx context.Context, action string) error {
	bets := s.ledger.Bets()
	if err := s.store.ReplaceAll(ctx, bets); err != nil {
		log.WithError(err).WithField("action", action).Error("Failed to persist ledger")
		return fmt.Errorf("failed to persist ledger after %s: %w", action, err)
	}

	s.bus.Emit(ctx, events.BetsChangedEvent{Action: action, BetCount: len(bets)})
	return nil
}
