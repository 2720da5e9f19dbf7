package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

func statsDraw(date, special string, sevenths ...string) *models.DrawResult {
	return &models.DrawResult{
		Date:         date,
		SpecialPrize: special,
		Prizes: map[models.PrizeTier][]string{
			models.TierSeventh: sevenths,
		},
	}
}

func TestStatsServiceFrequency(t *testing.T) {
	ctx := context.Background()

	store := new(MockDrawStore)
	store.On("ListRecent", ctx, 7).Return([]*models.DrawResult{
		statsDraw("2026-01-15", "12325", "25", "36"),
		statsDraw("2026-01-14", "99925", "47"),
	}, nil)

	svc := NewStatsService(store)
	frequency, err := svc.Frequency(ctx, 7)
	require.NoError(t, err)

	assert.Len(t, frequency, 100, "every two-digit number is present")
	assert.Equal(t, 3, frequency["25"], "special endings count alongside the prize tiers")
	assert.Equal(t, 1, frequency["36"])
	assert.Equal(t, 1, frequency["47"])
	assert.Equal(t, 0, frequency["00"])
}

func TestStatsServiceHotAndCold(t *testing.T) {
	ctx := context.Background()

	store := new(MockDrawStore)
	store.On("ListRecent", ctx, 30).Return([]*models.DrawResult{
		statsDraw("2026-01-15", "12325", "25", "25", "36"),
	}, nil)

	svc := NewStatsService(store)

	hot, err := svc.HotNumbers(ctx, 30, 2)
	require.NoError(t, err)
	require.Len(t, hot, 2)
	assert.Equal(t, NumberFrequency{Number: "25", Count: 3}, hot[0])
	assert.Equal(t, NumberFrequency{Number: "36", Count: 1}, hot[1])

	cold, err := svc.ColdNumbers(ctx, 30, 3)
	require.NoError(t, err)
	require.Len(t, cold, 3)
	assert.Equal(t, 0, cold[0].Count)
	assert.Equal(t, "00", cold[0].Number, "ties break by number")
}

func TestStatsServiceLedgerExposure(t *testing.T) {
	svc := NewStatsService(new(MockDrawStore))

	exposure := svc.LedgerExposure([]models.Bet{
		{Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000},
		{Kind: models.KindCombination, Numbers: []string{"25", "36"}, Stake: 5000},
	})

	require.Len(t, exposure, 2)
	assert.Equal(t, NumberStake{Number: "25", TotalStake: 15000}, exposure[0])
	assert.Equal(t, NumberStake{Number: "36", TotalStake: 5000}, exposure[1])
}
