package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lodebook/database"
	"lodebook/models"
)

// DrawRepository persists fetched draw results keyed by draw date, so
// settlements and statistics can run without re-hitting the provider.
type DrawRepository struct {
	q queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

// NewDrawRepositoryWithTx creates a new draw repository bound to a transaction
func NewDrawRepositoryWithTx(tx queryable) *DrawRepository {
	return &DrawRepository{q: tx}
}

// GetByDate retrieves the stored draw for a date, or nil when absent.
func (r *DrawRepository) GetByDate(ctx context.Context, date string) (*models.DrawResult, error) {
	query := `
		SELECT draw_date, special_prize, prizes
		FROM draws
		WHERE draw_date = $1
	`

	var draw models.DrawResult
	var prizesJSON []byte
	err := r.q.QueryRow(ctx, query, date).Scan(&draw.Date, &draw.SpecialPrize, &prizesJSON)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw for %s: %w", date, err)
	}

	if err := json.Unmarshal(prizesJSON, &draw.Prizes); err != nil {
		return nil, fmt.Errorf("failed to decode prizes for %s: %w", date, err)
	}

	return &draw, nil
}

// Upsert stores or refreshes the draw for its date.
func (r *DrawRepository) Upsert(ctx context.Context, draw *models.DrawResult) error {
	prizesJSON, err := json.Marshal(draw.Prizes)
	if err != nil {
		return fmt.Errorf("failed to encode prizes for %s: %w", draw.Date, err)
	}

	query := `
		INSERT INTO draws (draw_date, special_prize, prizes, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (draw_date) DO UPDATE
		SET special_prize = $2, prizes = $3, fetched_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, draw.Date, draw.SpecialPrize, prizesJSON); err != nil {
		return fmt.Errorf("failed to upsert draw for %s: %w", draw.Date, err)
	}
	return nil
}

// ListRecent retrieves the most recent stored draws, newest first.
func (r *DrawRepository) ListRecent(ctx context.Context, limit int) ([]*models.DrawResult, error) {
	query := `
		SELECT draw_date, special_prize, prizes
		FROM draws
		ORDER BY draw_date DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent draws: %w", err)
	}
	defer rows.Close()

	var draws []*models.DrawResult
	for rows.Next() {
		var draw models.DrawResult
		var prizesJSON []byte
		if err := rows.Scan(&draw.Date, &draw.SpecialPrize, &prizesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		if err := json.Unmarshal(prizesJSON, &draw.Prizes); err != nil {
			return nil, fmt.Errorf("failed to decode prizes for %s: %w", draw.Date, err)
		}
		draws = append(draws, &draw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}
