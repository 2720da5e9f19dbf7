package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"lodebook/database"
	"lodebook/models"
)

// TransactionalBetStore runs ledger writes inside a transaction so the
// delete-and-reinsert in ReplaceAll is atomic.
type TransactionalBetStore struct {
	db *database.DB
}

// NewTransactionalBetStore creates a bet store backed by the given pool.
func NewTransactionalBetStore(db *database.DB) *TransactionalBetStore {
	return &TransactionalBetStore{db: db}
}

// LoadAll retrieves every persisted bet in ledger order.
func (s *TransactionalBetStore) LoadAll(ctx context.Context) ([]models.Bet, error) {
	return NewBetRepository(s.db).LoadAll(ctx)
}

// ReplaceAll atomically overwrites the persisted ledger.
func (s *TransactionalBetStore) ReplaceAll(ctx context.Context, bets []models.Bet) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return NewBetRepositoryWithTx(tx).ReplaceAll(ctx, bets)
	})
}
