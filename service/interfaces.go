package service

import (
	"context"

	"lodebook/models"
)

// BetStore defines the interface for bet persistence
type BetStore interface {
	// LoadAll retrieves every persisted bet in ledger order
	LoadAll(ctx context.Context) ([]models.Bet, error)

	// ReplaceAll atomically overwrites the persisted ledger
	ReplaceAll(ctx context.Context, bets []models.Bet) error
}

// RateStore defines the interface for rate table persistence
type RateStore interface {
	// GetRateTable assembles the stored rate table; unconfigured kinds are nil
	GetRateTable(ctx context.Context) (*models.RateTable, error)

	// SaveRateTable upserts every configured kind of the given table
	SaveRateTable(ctx context.Context, table *models.RateTable) error
}

// DrawStore defines the interface for draw result persistence
type DrawStore interface {
	// GetByDate retrieves the stored draw for a date, or nil when absent
	GetByDate(ctx context.Context, date string) (*models.DrawResult, error)

	// Upsert stores or refreshes the draw for its date
	Upsert(ctx context.Context, draw *models.DrawResult) error

	// ListRecent retrieves the most recent stored draws, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.DrawResult, error)
}

// DrawProvider defines the interface for fetching draw results remotely
type DrawProvider interface {
	// FetchResult returns the draw for the given date (yyyy-mm-dd)
	FetchResult(ctx context.Context, date string) (*models.DrawResult, error)

	// FetchLatest returns the most recent published draw
	FetchLatest(ctx context.Context) (*models.DrawResult, error)
}
