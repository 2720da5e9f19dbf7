package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
	"lodebook/repository/testutil"
)

func TestBetRepository_ReplaceAllAndLoadAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty table loads nothing", func(t *testing.T) {
		bets, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, bets)
	})

	t.Run("round-trips bets preserving order", func(t *testing.T) {
		saved := []models.Bet{
			testutil.CreateTestBet(models.KindPair, []string{"25"}, 10000),
			testutil.CreateTestBet(models.KindCombination, []string{"12", "34", "56"}, 20000),
			testutil.CreateTestBet(models.KindSpecial, []string{"68"}, 5000),
		}
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			return NewBetRepositoryWithTx(tx).ReplaceAll(ctx, saved)
		})
		require.NoError(t, err)

		loaded, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 3)

		for i := range saved {
			assert.Equal(t, saved[i].ID, loaded[i].ID)
			assert.Equal(t, saved[i].Kind, loaded[i].Kind)
			assert.Equal(t, saved[i].Numbers, loaded[i].Numbers)
			assert.Equal(t, saved[i].Stake, loaded[i].Stake)
		}
	})

	t.Run("replace overwrites previous contents", func(t *testing.T) {
		replacement := []models.Bet{
			testutil.CreateTestBet(models.KindTriple, []string{"123"}, 7000),
		}
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			return NewBetRepositoryWithTx(tx).ReplaceAll(ctx, replacement)
		})
		require.NoError(t, err)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		loaded, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, replacement[0].ID, loaded[0].ID)
	})
}

func TestBetRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing bet returns nil", func(t *testing.T) {
		bet, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, bet)
	})

	t.Run("existing bet is found", func(t *testing.T) {
		saved := testutil.CreateTestBet(models.KindPair, []string{"25"}, 10000)
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			return NewBetRepositoryWithTx(tx).ReplaceAll(ctx, []models.Bet{saved})
		})
		require.NoError(t, err)

		bet, err := repo.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, bet)
		assert.Equal(t, saved.Numbers, bet.Numbers)
		assert.Equal(t, saved.Stake, bet.Stake)
	})
}
