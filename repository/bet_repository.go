package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lodebook/database"
	"lodebook/models"
)

// BetRepository persists the bet ledger. The ledger itself is the source of
// truth while the process runs; the table mirrors it so bets survive
// restarts.
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// NewBetRepositoryWithTx creates a new bet repository bound to a transaction
func NewBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// LoadAll retrieves every persisted bet in ledger order.
func (r *BetRepository) LoadAll(ctx context.Context) ([]models.Bet, error) {
	query := `
		SELECT id, kind, numbers, stake, created_at, updated_at
		FROM bets
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var bet models.Bet
		var kind string
		err := rows.Scan(
			&bet.ID,
			&kind,
			&bet.Numbers,
			&bet.Stake,
			&bet.CreatedAt,
			&bet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bet.Kind = models.BetKind(kind)
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// ReplaceAll overwrites the persisted ledger with the given bets, keeping
// their order. Callers run it inside a transaction so a crash mid-write
// never leaves a half-replaced ledger.
func (r *BetRepository) ReplaceAll(ctx context.Context, bets []models.Bet) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bets`); err != nil {
		return fmt.Errorf("failed to clear bets: %w", err)
	}

	query := `
		INSERT INTO bets (id, position, kind, numbers, stake, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i, bet := range bets {
		_, err := r.q.Exec(ctx, query,
			bet.ID,
			i,
			string(bet.Kind),
			bet.Numbers,
			bet.Stake,
			bet.CreatedAt,
			bet.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bet %s: %w", bet.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a single persisted bet.
func (r *BetRepository) GetByID(ctx context.Context, id string) (*models.Bet, error) {
	query := `
		SELECT id, kind, numbers, stake, created_at, updated_at
		FROM bets
		WHERE id = $1
	`

	var bet models.Bet
	var kind string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bet.ID,
		&kind,
		&bet.Numbers,
		&bet.Stake,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %s: %w", id, err)
	}

	bet.Kind = models.BetKind(kind)
	return &bet, nil
}

// Count returns the number of persisted bets.
func (r *BetRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bets`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bets: %w", err)
	}
	return count, nil
}
