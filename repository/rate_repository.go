package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"lodebook/database"
	"lodebook/models"
)

// RateRepository persists the payout rate table, one row per bet kind.
type RateRepository struct {
	q queryable
}

// NewRateRepository creates a new rate repository
func NewRateRepository(db *database.DB) *RateRepository {
	return &RateRepository{q: db.Pool}
}

// NewRateRepositoryWithTx creates a new rate repository bound to a transaction
func NewRateRepositoryWithTx(tx queryable) *RateRepository {
	return &RateRepository{q: tx}
}

// GetRateTable assembles the rate table from stored rows. Kinds without a
// row are left nil so the settlement engine can reject them explicitly.
func (r *RateRepository) GetRateTable(ctx context.Context) (*models.RateTable, error) {
	query := `
		SELECT kind, stake_fee, payout_multiplier, payout_multipliers, repeat_hits
		FROM rates
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}
	defer rows.Close()

	table := &models.RateTable{}
	for rows.Next() {
		var kind string
		var stakeFee float64
		var multiplier *float64
		var multipliersJSON []byte
		var repeatHits bool

		if err := rows.Scan(&kind, &stakeFee, &multiplier, &multipliersJSON, &repeatHits); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}

		switch models.BetKind(kind) {
		case models.KindCombination:
			multipliers, err := decodeMultipliers(multipliersJSON)
			if err != nil {
				return nil, fmt.Errorf("failed to decode combination multipliers: %w", err)
			}
			table.Combination = &models.CombinationRate{
				StakeFee:          stakeFee,
				PayoutMultipliers: multipliers,
				RepeatHits:        repeatHits,
			}
		case models.KindPair:
			table.Pair = singleRate(stakeFee, multiplier)
		case models.KindSpecial:
			table.Special = singleRate(stakeFee, multiplier)
		case models.KindTriple:
			table.Triple = singleRate(stakeFee, multiplier)
		default:
			return nil, fmt.Errorf("unknown rate kind %q", kind)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}

	return table, nil
}

// SaveRateTable upserts every configured kind of the given table.
func (r *RateRepository) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}

	if table.Pair != nil {
		if err := r.upsertSingle(ctx, models.KindPair, table.Pair); err != nil {
			return err
		}
	}
	if table.Special != nil {
		if err := r.upsertSingle(ctx, models.KindSpecial, table.Special); err != nil {
			return err
		}
	}
	if table.Triple != nil {
		if err := r.upsertSingle(ctx, models.KindTriple, table.Triple); err != nil {
			return err
		}
	}
	if table.Combination != nil {
		if err := r.upsertCombination(ctx, table.Combination); err != nil {
			return err
		}
	}

	return nil
}

func (r *RateRepository) upsertSingle(ctx context.Context, kind models.BetKind, rate *models.Rate) error {
	query := `
		INSERT INTO rates (kind, stake_fee, payout_multiplier, payout_multipliers, repeat_hits, updated_at)
		VALUES ($1, $2, $3, NULL, FALSE, NOW())
		ON CONFLICT (kind) DO UPDATE
		SET stake_fee = $2, payout_multiplier = $3, payout_multipliers = NULL, repeat_hits = FALSE, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, string(kind), rate.StakeFee, rate.PayoutMultiplier); err != nil {
		return fmt.Errorf("failed to upsert %s rate: %w", kind, err)
	}
	return nil
}

func (r *RateRepository) upsertCombination(ctx context.Context, rate *models.CombinationRate) error {
	multipliersJSON, err := encodeMultipliers(rate.PayoutMultipliers)
	if err != nil {
		return fmt.Errorf("failed to encode combination multipliers: %w", err)
	}

	query := `
		INSERT INTO rates (kind, stake_fee, payout_multiplier, payout_multipliers, repeat_hits, updated_at)
		VALUES ($1, $2, NULL, $3, $4, NOW())
		ON CONFLICT (kind) DO UPDATE
		SET stake_fee = $2, payout_multiplier = NULL, payout_multipliers = $3, repeat_hits = $4, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, string(models.KindCombination), rate.StakeFee, multipliersJSON, rate.RepeatHits); err != nil {
		return fmt.Errorf("failed to upsert combination rate: %w", err)
	}
	return nil
}

func singleRate(stakeFee float64, multiplier *float64) *models.Rate {
	rate := &models.Rate{StakeFee: stakeFee}
	if multiplier != nil {
		rate.PayoutMultiplier = *multiplier
	}
	return rate
}

// JSON object keys are strings, so the size-keyed multiplier map round-trips
// through string keys.
func encodeMultipliers(multipliers map[int]float64) ([]byte, error) {
	encoded := make(map[string]float64, len(multipliers))
	for size, multiplier := range multipliers {
		encoded[strconv.Itoa(size)] = multiplier
	}
	return json.Marshal(encoded)
}

func decodeMultipliers(data []byte) (map[int]float64, error) {
	if len(data) == 0 {
		return map[int]float64{}, nil
	}

	var encoded map[string]float64
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, err
	}

	multipliers := make(map[int]float64, len(encoded))
	for key, multiplier := range encoded {
		size, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid multiplier size key %q", key)
		}
		multipliers[size] = multiplier
	}
	return multipliers, nil
}
