package testutil

import (
	"time"

	"github.com/google/uuid"

	"lodebook/models"
)

// CreateTestBet builds a valid bet of the given kind for repository tests.
func CreateTestBet(kind models.BetKind, numbers []string, stake int64) models.Bet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return models.Bet{
		ID:        uuid.NewString(),
		Kind:      kind,
		Numbers:   numbers,
		Stake:     stake,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestDraw builds a full draw result with every tier populated.
func CreateTestDraw(date string) *models.DrawResult {
	return &models.DrawResult{
		Date:         date,
		SpecialPrize: "12325",
		Prizes: map[models.PrizeTier][]string{
			models.TierFirst:   {"34567"},
			models.TierSecond:  {"11111", "22222"},
			models.TierThird:   {"31111", "32222", "33333", "34444", "35555", "36666"},
			models.TierFourth:  {"4111", "4222", "4333", "4444"},
			models.TierFifth:   {"5111", "5222", "5333", "5444", "5555", "5666"},
			models.TierSixth:   {"611", "622", "633"},
			models.TierSeventh: {"71", "72", "73", "74"},
		},
	}
}
