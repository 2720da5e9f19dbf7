package service

import (
	"context"
	"fmt"
	"sort"

	"lodebook/models"
)

// NumberFrequency pairs a two-digit number with how often it appeared.
type NumberFrequency struct {
	Number string
	Count  int
}

// StatsService computes frequency statistics over stored draws.
type StatsService struct {
	draws DrawStore
}

// NewStatsService creates a new stats service
func NewStatsService(draws DrawStore) *StatsService {
	return &StatsService{draws: draws}
}

// Frequency counts how often each two-digit ending appeared across the most
// recent draws. All hundred numbers are present, including never-drawn ones.
func (s *StatsService) Frequency(ctx context.Context, drawCount int) (map[string]int, error) {
	draws, err := s.draws.ListRecent(ctx, drawCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load draws for statistics: %w", err)
	}

	frequency := make(map[string]int, 100)
	for i := 0; i <= 99; i++ {
		frequency[fmt.Sprintf("%02d", i)] = 0
	}

	for _, draw := range draws {
		for _, ending := range draw.AllEndings() {
			if _, ok := frequency[ending]; ok {
				frequency[ending]++
			}
		}
	}

	return frequency, nil
}

// HotNumbers returns the most frequently drawn numbers over the recent draws.
func (s *StatsService) HotNumbers(ctx context.Context, drawCount, limit int) ([]NumberFrequency, error) {
	frequency, err := s.Frequency(ctx, drawCount)
	if err != nil {
		return nil, err
	}
	return rankNumbers(frequency, limit, func(a, b NumberFrequency) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Number < b.Number
	}), nil
}

// ColdNumbers returns the least frequently drawn numbers over the recent draws.
func (s *StatsService) ColdNumbers(ctx context.Context, drawCount, limit int) ([]NumberFrequency, error) {
	frequency, err := s.Frequency(ctx, drawCount)
	if err != nil {
		return nil, err
	}
	return rankNumbers(frequency, limit, func(a, b NumberFrequency) bool {
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Number < b.Number
	}), nil
}

// LedgerExposure reports each distinct played number with the total stake
// riding on it, largest first.
func (s *StatsService) LedgerExposure(bets []models.Bet) []NumberStake {
	totals := make(map[string]int64)
	for _, bet := range bets {
		for _, number := range bet.Numbers {
			totals[number] += bet.Stake
		}
	}

	exposure := make([]NumberStake, 0, len(totals))
	for number, stake := range totals {
		exposure = append(exposure, NumberStake{Number: number, TotalStake: stake})
	}
	sort.Slice(exposure, func(i, j int) bool {
		if exposure[i].TotalStake != exposure[j].TotalStake {
			return exposure[i].TotalStake > exposure[j].TotalStake
		}
		return exposure[i].Number < exposure[j].Number
	})
	return exposure
}

// NumberStake pairs a played number with the total stake on it.
type NumberStake struct {
	Number     string
	TotalStake int64
}

func rankNumbers(frequency map[string]int, limit int, less func(a, b NumberFrequency) bool) []NumberFrequency {
	ranked := make([]NumberFrequency, 0, len(frequency))
	for number, count := range frequency {
		ranked = append(ranked, NumberFrequency{Number: number, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
