//go:build ignore

// Standalone rate analysis tool for the lodebook settlement engine.
// Simulates random draws to estimate hit rates and the owner's edge under
// the default rate table. Run with: go run rate_analysis.go
package main

import (
	"fmt"
	"math/rand"

	"lodebook/models"
	"lodebook/settlement"
)

// tierWidths gives the digit count per prize tier in the northern draw.
var tierWidths = map[models.PrizeTier]int{
	models.TierFirst:   5,
	models.TierSecond:  5,
	models.TierThird:   5,
	models.TierFourth:  4,
	models.TierFifth:   4,
	models.TierSixth:   3,
	models.TierSeventh: 2,
}

func main() {
	fmt.Println("=== Lodebook Rate Analysis ===")
	fmt.Println()

	r := rand.New(rand.NewSource(1))
	rates := models.DefaultRateTable()
	trials := 100000
	stake := int64(10000)

	analyzeKind(r, rates, models.KindPair, stake, trials)
	analyzeKind(r, rates, models.KindSpecial, stake, trials)
	analyzeKind(r, rates, models.KindCombination, stake, trials)
	analyzeKind(r, rates, models.KindTriple, stake, trials)
}

// analyzeKind simulates one bet of the given kind against many random draws
// and reports the average outcome from the owner's side.
func analyzeKind(r *rand.Rand, rates *models.RateTable, kind models.BetKind, stake int64, trials int) {
	var totalPayout, totalFee float64
	hits := 0

	for t := 0; t < trials; t++ {
		bet := randomBet(r, kind, stake)
		draw := randomDraw(r)

		result, err := settlement.Settle([]models.Bet{bet}, draw, rates, models.RoleOwner)
		if err != nil {
			fmt.Printf("%-12s settle error: %v\n", kind, err)
			return
		}

		totalPayout += result.TotalPayout
		totalFee += result.TotalFee
		if result.TotalPayout > 0 {
			hits++
		}
	}

	n := float64(trials)
	hitRate := float64(hits) / n
	edge := (totalFee - totalPayout) / n
	edgePerStake := edge / float64(stake) * 100

	fmt.Printf("%-12s | Trials: %d | Hit rate: %6.3f%% | Avg fee: %10.0f | Avg payout: %10.0f | Owner edge: %+8.0f (%+.2f%% of stake)\n",
		kind, trials, hitRate*100, totalFee/n, totalPayout/n, edge, edgePerStake)
}

func randomBet(r *rand.Rand, kind models.BetKind, stake int64) models.Bet {
	bet := models.Bet{ID: "sim", Kind: kind, Stake: stake}
	switch kind {
	case models.KindTriple:
		bet.Numbers = []string{fmt.Sprintf("%03d", r.Intn(1000))}
	case models.KindCombination:
		first := r.Intn(100)
		second := (first + 1 + r.Intn(99)) % 100
		bet.Numbers = []string{fmt.Sprintf("%02d", first), fmt.Sprintf("%02d", second)}
	default:
		bet.Numbers = []string{fmt.Sprintf("%02d", r.Intn(100))}
	}
	return bet
}

func randomDraw(r *rand.Rand) *models.DrawResult {
	draw := &models.DrawResult{
		Date:         "simulated",
		SpecialPrize: randomNumber(r, 5),
		Prizes:       make(map[models.PrizeTier][]string),
	}
	for _, tier := range models.TierOrder {
		for i := 0; i < models.TierSizes[tier]; i++ {
			draw.Prizes[tier] = append(draw.Prizes[tier], randomNumber(r, tierWidths[tier]))
		}
	}
	return draw
}

func randomNumber(r *rand.Rand, width int) string {
	digits := make([]byte, width)
	for i := range digits {
		digits[i] = byte('0' + r.Intn(10))
	}
	return string(digits)
}
