package lottery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

func sampleDetail(t *testing.T) string {
	t.Helper()
	numbers := []string{
		"12325", // special
		"34567", // first
		"11111", "22222",
		"31111", "32222", "33333", "34444", "35555", "36666",
		"4111", "4222", "4333", "4444",
		"5111", "5222", "5333", "5444", "5555", "5666",
		"611", "622", "633",
		"71", "72", "73", "74",
	}
	encoded, err := json.Marshal(numbers)
	require.NoError(t, err)
	return string(encoded)
}

func TestParseIssue(t *testing.T) {
	t.Run("maps detail array onto prize tiers", func(t *testing.T) {
		draw, err := parseIssue([]providerIssue{
			{TurnNum: "2026-01-15", Detail: sampleDetail(t)},
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-01-15", draw.Date)
		assert.Equal(t, "12325", draw.SpecialPrize)
		assert.Equal(t, []string{"34567"}, draw.Prizes[models.TierFirst])
		assert.Len(t, draw.Prizes[models.TierSecond], 2)
		assert.Len(t, draw.Prizes[models.TierThird], 6)
		assert.Len(t, draw.Prizes[models.TierFourth], 4)
		assert.Len(t, draw.Prizes[models.TierFifth], 6)
		assert.Len(t, draw.Prizes[models.TierSixth], 3)
		assert.Equal(t, []string{"71", "72", "73", "74"}, draw.Prizes[models.TierSeventh])
	})

	t.Run("splits comma-packed prize slots", func(t *testing.T) {
		detail, err := json.Marshal([]string{"12345", "11111, 22222"})
		require.NoError(t, err)

		draw, err := parseIssue([]providerIssue{
			{TurnNum: "2026-01-15", Detail: string(detail)},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"11111", "22222"}, draw.Prizes[models.TierFirst])
	})

	t.Run("rejects empty issue list", func(t *testing.T) {
		_, err := parseIssue(nil)
		assert.Error(t, err)
	})

	t.Run("rejects malformed detail", func(t *testing.T) {
		_, err := parseIssue([]providerIssue{
			{TurnNum: "2026-01-15", Detail: "not json"},
		})
		assert.Error(t, err)
	})
}

func TestLatestDate(t *testing.T) {
	t.Run("before publish cutoff uses yesterday", func(t *testing.T) {
		c := NewClient("http://provider", WithClock(func() time.Time {
			return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		}))
		assert.Equal(t, "2026-01-14", c.latestDate())
	})

	t.Run("just before 18:35 still uses yesterday", func(t *testing.T) {
		c := NewClient("http://provider", WithClock(func() time.Time {
			return time.Date(2026, 1, 15, 18, 34, 59, 0, time.UTC)
		}))
		assert.Equal(t, "2026-01-14", c.latestDate())
	})

	t.Run("after cutoff uses today", func(t *testing.T) {
		c := NewClient("http://provider", WithClock(func() time.Time {
			return time.Date(2026, 1, 15, 18, 35, 0, 0, time.UTC)
		}))
		assert.Equal(t, "2026-01-15", c.latestDate())
	})
}

func TestConvertDateFormat(t *testing.T) {
	assert.Equal(t, "15-01-2026", convertDateFormat("2026-01-15"))
	assert.Equal(t, "2026-01-15", convertDateFormat("15-01-2026"))
	assert.Equal(t, "garbage", convertDateFormat("garbage"))
}

func TestClientCache(t *testing.T) {
	current := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c := NewClient("http://provider", WithClock(func() time.Time { return current }))

	draw := &models.DrawResult{
		Date:         "2026-01-15",
		SpecialPrize: "12325",
		Prizes:       map[models.PrizeTier][]string{models.TierFirst: {"34567"}},
	}
	c.store("2026-01-15", draw)

	t.Run("fresh entry is returned as a copy", func(t *testing.T) {
		got := c.fromCache("2026-01-15")
		require.NotNil(t, got)
		got.SpecialPrize = "mutated"
		assert.Equal(t, "12325", c.fromCache("2026-01-15").SpecialPrize)
	})

	t.Run("expired entry is dropped", func(t *testing.T) {
		current = current.Add(cacheTTL + time.Second)
		assert.Nil(t, c.fromCache("2026-01-15"))
	})

	t.Run("clear cache", func(t *testing.T) {
		current = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		c.store("2026-01-15", draw)
		c.ClearCache()
		assert.Nil(t, c.fromCache("2026-01-15"))
	})
}
