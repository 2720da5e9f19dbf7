package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
	"lodebook/repository/testutil"
)

func TestRateRepository_SaveAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRateRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty table yields empty rate table", func(t *testing.T) {
		table, err := repo.GetRateTable(ctx)
		require.NoError(t, err)
		assert.Nil(t, table.Pair)
		assert.Nil(t, table.Special)
		assert.Nil(t, table.Combination)
		assert.Nil(t, table.Triple)
	})

	t.Run("round-trips the default table", func(t *testing.T) {
		err := repo.SaveRateTable(ctx, models.DefaultRateTable())
		require.NoError(t, err)

		table, err := repo.GetRateTable(ctx)
		require.NoError(t, err)

		require.NotNil(t, table.Pair)
		assert.Equal(t, 21.75, table.Pair.StakeFee)
		assert.Equal(t, 80.0, table.Pair.PayoutMultiplier)

		require.NotNil(t, table.Special)
		assert.Equal(t, 0.83, table.Special.StakeFee)

		require.NotNil(t, table.Combination)
		assert.Equal(t, 0.65, table.Combination.StakeFee)
		assert.True(t, table.Combination.RepeatHits)
		assert.Equal(t, map[int]float64{2: 11, 3: 45, 4: 140}, table.Combination.PayoutMultipliers)

		require.NotNil(t, table.Triple)
		assert.Equal(t, 400.0, table.Triple.PayoutMultiplier)
	})

	t.Run("save updates existing rows", func(t *testing.T) {
		updated := models.DefaultRateTable()
		updated.Pair.PayoutMultiplier = 85

		err := repo.SaveRateTable(ctx, updated)
		require.NoError(t, err)

		table, err := repo.GetRateTable(ctx)
		require.NoError(t, err)
		require.NotNil(t, table.Pair)
		assert.Equal(t, 85.0, table.Pair.PayoutMultiplier)
	})

	t.Run("rejects invalid tables", func(t *testing.T) {
		bad := models.DefaultRateTable()
		bad.Special.StakeFee = -1

		err := repo.SaveRateTable(ctx, bad)
		var configErr *models.ConfigurationError
		assert.ErrorAs(t, err, &configErr)
	})
}
