package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

// drawWithEndings builds a draw whose two-digit endings are exactly the
// given multiset, with "99" as the special prize ending unless overridden.
func drawWithEndings(special string, endings ...string) *models.DrawResult {
	draw := &models.DrawResult{
		Date:         "2026-01-15",
		SpecialPrize: "123" + special,
		Prizes:       map[models.PrizeTier][]string{},
	}
	for _, ending := range endings {
		draw.Prizes[models.TierSeventh] = append(draw.Prizes[models.TierSeventh], ending)
	}
	return draw
}

func TestSettlePair(t *testing.T) {
	rates := models.DefaultRateTable()

	t.Run("hit count multiplies the payout", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000},
		}
		// "25" appears twice: once in the seventh tier, once as the
		// special ending.
		draw := drawWithEndings("25", "25", "36")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		require.Len(t, result.Kinds, 1)
		outcome := result.Kinds[0].Outcomes[0]
		assert.Equal(t, 2, outcome.HitCount)
		assert.True(t, outcome.Hit)
		assert.Equal(t, 1_600_000.0, outcome.Payout)
		assert.Equal(t, 217_500.0, outcome.Fee)
		assert.Equal(t, 1_590_000.0, outcome.Profit)
	})

	t.Run("miss pays nothing but still charges the fee", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindPair, Numbers: []string{"77"}, Stake: 10000},
		}
		draw := drawWithEndings("25", "36")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		outcome := result.Kinds[0].Outcomes[0]
		assert.Equal(t, 0, outcome.HitCount)
		assert.False(t, outcome.Hit)
		assert.Equal(t, 0.0, outcome.Payout)
		assert.Equal(t, 217_500.0, outcome.Fee)
	})
}

func TestSettleSpecial(t *testing.T) {
	rates := models.DefaultRateTable()

	t.Run("matches only the special ending", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindSpecial, Numbers: []string{"68"}, Stake: 5000},
		}
		// "68" also appears in a lower tier, which must not matter here.
		draw := drawWithEndings("68", "68", "68")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		outcome := result.Kinds[0].Outcomes[0]
		assert.True(t, outcome.Hit)
		assert.Equal(t, 1, outcome.HitCount)
		assert.Equal(t, 400_000.0, outcome.Payout)
	})

	t.Run("lower tier appearance alone is a miss", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindSpecial, Numbers: []string{"68"}, Stake: 5000},
		}
		draw := drawWithEndings("25", "68")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)
		assert.False(t, result.Kinds[0].Outcomes[0].Hit)
	})
}

func TestSettleCombination(t *testing.T) {
	t.Run("repeat hits pay the minimum member frequency", func(t *testing.T) {
		rates := models.DefaultRateTable()
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindCombination, Numbers: []string{"12", "34"}, Stake: 1000},
		}
		// "12" twice, "34" three times: min frequency 2.
		draw := drawWithEndings("12", "12", "34", "34", "34")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		outcome := result.Kinds[0].Outcomes[0]
		assert.Equal(t, 2, outcome.HitCount)
		assert.Equal(t, 2*1000*11.0, outcome.Payout)
	})

	t.Run("one absent member misses the whole combination", func(t *testing.T) {
		rates := models.DefaultRateTable()
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindCombination, Numbers: []string{"12", "34", "56"}, Stake: 1000},
		}
		draw := drawWithEndings("12", "34")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)
		assert.False(t, result.Kinds[0].Outcomes[0].Hit)
		assert.Equal(t, 0.0, result.Kinds[0].Outcomes[0].Payout)
	})

	t.Run("binary mode pays once regardless of frequencies", func(t *testing.T) {
		rates := models.DefaultRateTable()
		rates.Combination.RepeatHits = false
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindCombination, Numbers: []string{"12", "34"}, Stake: 1000},
		}
		draw := drawWithEndings("12", "12", "34", "34")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		outcome := result.Kinds[0].Outcomes[0]
		assert.Equal(t, 1, outcome.HitCount)
		assert.Equal(t, 1000*11.0, outcome.Payout)
	})

	t.Run("unknown size pays zero", func(t *testing.T) {
		rates := models.DefaultRateTable()
		rates.Combination.PayoutMultipliers = map[int]float64{3: 45}
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindCombination, Numbers: []string{"12", "34"}, Stake: 1000},
		}
		draw := drawWithEndings("12", "34")

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)
		assert.Equal(t, 0.0, result.Kinds[0].Outcomes[0].Payout)
	})
}

func TestSettleTriple(t *testing.T) {
	rates := models.DefaultRateTable()

	t.Run("matches the last three digits of the special prize", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindTriple, Numbers: []string{"325"}, Stake: 2000},
		}
		draw := &models.DrawResult{
			Date:         "2026-01-15",
			SpecialPrize: "12325",
			Prizes:       map[models.PrizeTier][]string{},
		}

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		outcome := result.Kinds[0].Outcomes[0]
		assert.True(t, outcome.Hit)
		assert.Equal(t, 2000*400.0, outcome.Payout)
	})

	t.Run("short special prize never matches", func(t *testing.T) {
		bets := []models.Bet{
			{ID: "b1", Kind: models.KindTriple, Numbers: []string{"325"}, Stake: 2000},
		}
		draw := &models.DrawResult{
			Date:         "2026-01-15",
			SpecialPrize: "25",
			Prizes:       map[models.PrizeTier][]string{},
		}

		result, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)
		assert.False(t, result.Kinds[0].Outcomes[0].Hit)
	})
}

func TestSettleAggregation(t *testing.T) {
	rates := models.DefaultRateTable()
	bets := []models.Bet{
		{ID: "b1", Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000},
		{ID: "b2", Kind: models.KindSpecial, Numbers: []string{"68"}, Stake: 5000},
	}
	draw := drawWithEndings("68", "25", "25")

	t.Run("owner nets fees minus payouts", func(t *testing.T) {
		result, err := Settle(bets, draw, rates, models.RoleOwner)
		require.NoError(t, err)

		// Pair: 2 hits, payout 1,600,000, fee 217,500.
		// Special: hit, payout 400,000, fee 4,150.
		assert.Equal(t, int64(15000), result.TotalStake)
		assert.Equal(t, 221_650.0, result.TotalFee)
		assert.Equal(t, 2_000_000.0, result.TotalPayout)
		assert.Equal(t, 221_650.0-2_000_000.0, result.NetProfit)
		assert.InDelta(t, result.NetProfit/15000.0, result.ProfitRate, 1e-9)
	})

	t.Run("player is the exact negation of owner", func(t *testing.T) {
		owner, err := Settle(bets, draw, rates, models.RoleOwner)
		require.NoError(t, err)
		player, err := Settle(bets, draw, rates, models.RolePlayer)
		require.NoError(t, err)

		assert.Equal(t, owner.NetProfit, -player.NetProfit)
		assert.Equal(t, owner.TotalPayout, player.TotalPayout)
	})

	t.Run("settlement is idempotent", func(t *testing.T) {
		first, err := Settle(bets, draw, rates, models.RoleOwner)
		require.NoError(t, err)
		second, err := Settle(bets, draw, rates, models.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty ledger settles to zeros", func(t *testing.T) {
		result, err := Settle(nil, draw, rates, models.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.TotalStake)
		assert.Equal(t, 0.0, result.NetProfit)
		assert.Equal(t, 0.0, result.ProfitRate)
		assert.Empty(t, result.Kinds)
	})
}

func TestSettleConfigurationErrors(t *testing.T) {
	draw := drawWithEndings("25", "25")
	bets := []models.Bet{
		{ID: "b1", Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000},
	}

	t.Run("nil rate table", func(t *testing.T) {
		_, err := Settle(bets, draw, nil, models.RoleOwner)
		var configErr *models.ConfigurationError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("missing rates for a played kind", func(t *testing.T) {
		rates := models.DefaultRateTable()
		rates.Pair = nil

		_, err := Settle(bets, draw, rates, models.RoleOwner)
		var configErr *models.ConfigurationError
		require.ErrorAs(t, err, &configErr)
	})

	t.Run("missing rates for an unplayed kind is fine", func(t *testing.T) {
		rates := models.DefaultRateTable()
		rates.Triple = nil

		_, err := Settle(bets, draw, rates, models.RoleOwner)
		assert.NoError(t, err)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := Settle(bets, draw, models.DefaultRateTable(), models.Role("banker"))
		var configErr *models.ConfigurationError
		assert.ErrorAs(t, err, &configErr)
	})
}
