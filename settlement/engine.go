// Package settlement matches recorded bets against a draw result and
// computes wins, fees and profit under a rate table. Settle is a pure
// function: it never mutates its inputs and is safe to call concurrently.
package settlement

import (
	"fmt"

	"lodebook/models"
)

// Settle computes the outcome of every bet against the draw, aggregates per
// kind and overall, and signs the net profit for the given role.
//
// It fails with a ConfigurationError when the rate table is missing an entry
// for a kind that has at least one bet; nothing partial is returned.
func Settle(bets []models.Bet, draw *models.DrawResult, rates *models.RateTable, role models.Role) (*models.SettlementResult, error) {
	if rates == nil {
		return nil, &models.ConfigurationError{Message: "rate table is required"}
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, &models.ConfigurationError{Message: fmt.Sprintf("unknown role %q", role)}
	}

	byKind := make(map[models.BetKind][]models.Bet)
	for _, bet := range bets {
		byKind[bet.Kind] = append(byKind[bet.Kind], bet)
	}
	for _, kind := range models.Kinds {
		if len(byKind[kind]) == 0 {
			continue
		}
		if !hasRates(rates, kind) {
			return nil, &models.ConfigurationError{Message: fmt.Sprintf("no rates configured for kind %q", kind)}
		}
	}

	counts := draw.EndingCounts()

	result := &models.SettlementResult{
		Date: draw.Date,
		Role: role,
	}

	for _, kind := range models.Kinds {
		kindBets := byKind[kind]
		if len(kindBets) == 0 {
			continue
		}

		breakdown := models.KindBreakdown{Kind: kind}
		for _, bet := range kindBets {
			var outcome models.BetOutcome
			switch kind {
			case models.KindPair:
				outcome = settlePair(&bet, counts, rates.Pair)
			case models.KindSpecial:
				outcome = settleSpecial(&bet, draw.SpecialEnding2(), rates.Special)
			case models.KindCombination:
				outcome = settleCombination(&bet, counts, rates.Combination)
			case models.KindTriple:
				outcome = settleTriple(&bet, draw.SpecialEnding3(), rates.Triple)
			}
			breakdown.TotalStake += outcome.Stake
			breakdown.TotalFee += outcome.Fee
			breakdown.TotalPayout += outcome.Payout
			breakdown.Outcomes = append(breakdown.Outcomes, outcome)
		}
		breakdown.Profit = breakdown.TotalPayout - float64(breakdown.TotalStake)

		result.Kinds = append(result.Kinds, breakdown)
		result.TotalStake += breakdown.TotalStake
		result.TotalFee += breakdown.TotalFee
		result.TotalPayout += breakdown.TotalPayout
	}

	if role == models.RoleOwner {
		result.NetProfit = result.TotalFee - result.TotalPayout
	} else {
		result.NetProfit = result.TotalPayout - result.TotalFee
	}
	if result.TotalStake > 0 {
		result.ProfitRate = result.NetProfit / float64(result.TotalStake)
	}

	return result, nil
}

func hasRates(rates *models.RateTable, kind models.BetKind) bool {
	switch kind {
	case models.KindPair:
		return rates.Pair != nil
	case models.KindSpecial:
		return rates.Special != nil
	case models.KindCombination:
		return rates.Combination != nil
	case models.KindTriple:
		return rates.Triple != nil
	}
	return false
}

// settlePair counts every occurrence of the number among the draw endings; a
// number appearing in several prize positions pays once per occurrence.
func settlePair(bet *models.Bet, counts map[string]int, rate *models.Rate) models.BetOutcome {
	hits := counts[bet.Number()]
	payout := float64(hits) * float64(bet.Stake) * rate.PayoutMultiplier
	return newOutcome(bet, hits, hits > 0, payout, float64(bet.Stake)*rate.StakeFee)
}

func settleSpecial(bet *models.Bet, specialEnding string, rate *models.Rate) models.BetOutcome {
	hit := specialEnding != "" && bet.Number() == specialEnding
	var payout float64
	if hit {
		payout = float64(bet.Stake) * rate.PayoutMultiplier
	}
	hits := 0
	if hit {
		hits = 1
	}
	return newOutcome(bet, hits, hit, payout, float64(bet.Stake)*rate.StakeFee)
}

// settleCombination hits only when every member number appears in the draw.
// With RepeatHits the combination pays as many times as its least-frequent
// member allows; without it the hit is binary.
func settleCombination(bet *models.Bet, counts map[string]int, rate *models.CombinationRate) models.BetOutcome {
	hits := 0
	if rate.RepeatHits {
		minCount := -1
		for _, n := range bet.Numbers {
			c := counts[n]
			if minCount < 0 || c < minCount {
				minCount = c
			}
		}
		if minCount > 0 {
			hits = minCount
		}
	} else {
		all := true
		for _, n := range bet.Numbers {
			if counts[n] == 0 {
				all = false
				break
			}
		}
		if all {
			hits = 1
		}
	}

	// An unknown combination size scores a zero multiplier rather than
	// failing the run.
	multiplier := rate.PayoutMultipliers[len(bet.Numbers)]
	payout := float64(hits) * float64(bet.Stake) * multiplier
	return newOutcome(bet, hits, hits > 0, payout, float64(bet.Stake)*rate.StakeFee)
}

func settleTriple(bet *models.Bet, specialEnding3 string, rate *models.Rate) models.BetOutcome {
	hit := specialEnding3 != "" && bet.Number() == specialEnding3
	var payout float64
	if hit {
		payout = float64(bet.Stake) * rate.PayoutMultiplier
	}
	hits := 0
	if hit {
		hits = 1
	}
	return newOutcome(bet, hits, hit, payout, float64(bet.Stake)*rate.StakeFee)
}

func newOutcome(bet *models.Bet, hits int, hit bool, payout, fee float64) models.BetOutcome {
	return models.BetOutcome{
		BetID:    bet.ID,
		Kind:     bet.Kind,
		Numbers:  append([]string(nil), bet.Numbers...),
		Stake:    bet.Stake,
		HitCount: hits,
		Hit:      hit,
		Payout:   payout,
		Fee:      fee,
		Profit:   payout - float64(bet.Stake),
	}
}
