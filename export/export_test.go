package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

func newTestExporter() *Exporter {
	fixed := time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)
	return New(WithClock(func() time.Time { return fixed }))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		valid bool
	}{
		{"json", FormatJSON, true},
		{"CSV", FormatCSV, true},
		{"  json ", FormatJSON, true},
		{"xlsx", "", false},
		{"pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, format)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unsupported export format")
		})
	}
}

func TestExportBetsJSON(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	bets := []models.Bet{
		{ID: "bet-1", Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000, CreatedAt: created, UpdatedAt: created},
	}

	file, err := newTestExporter().Bets(bets, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "bets_2026-01-15_193000.json", file.Name)
	assert.Equal(t, "application/json", file.ContentType)

	var decoded struct {
		Version   string       `json:"version"`
		Timestamp time.Time    `json:"timestamp"`
		Data      []models.Bet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(file.Data, &decoded))
	assert.Equal(t, "2.0", decoded.Version)
	assert.Equal(t, bets, decoded.Data)
}

func TestExportBetsCSV(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	bets := []models.Bet{
		{ID: "bet-1", Kind: models.KindCombination, Numbers: []string{"12", "34"}, Stake: 5000, CreatedAt: created, UpdatedAt: created},
	}

	file, err := newTestExporter().Bets(bets, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "bets_2026-01-15_193000.csv", file.Name)
	assert.True(t, strings.HasPrefix(string(file.Data), "\ufeff"), "CSV carries a UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(file.Data), "\ufeff")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,kind,numbers,stake,created_at,updated_at", lines[0])
	assert.Contains(t, lines[1], "bet-1,combination,12 34,5000")
}

func TestExportSettlementCSV(t *testing.T) {
	result := &models.SettlementResult{
		Date: "2026-01-15",
		Role: models.RoleOwner,
		Kinds: []models.KindBreakdown{
			{
				Kind: models.KindPair,
				Outcomes: []models.BetOutcome{
					{BetID: "bet-1", Kind: models.KindPair, Numbers: []string{"25"}, Stake: 10000, HitCount: 2, Hit: true, Payout: 1600000, Fee: 217500, Profit: 1590000},
				},
			},
		},
	}

	file, err := newTestExporter().Settlement(result, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(file.Data), "\ufeff")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,role,kind,numbers,stake,hit_count,payout,fee,profit", lines[0])
	assert.Equal(t, "2026-01-15,owner,pair,25,10000,2,1600000.00,217500.00,1590000.00", lines[1])
}

func TestExportUnsupportedFormat(t *testing.T) {
	exporter := newTestExporter()

	_, err := exporter.Bets(nil, Format("xlsx"))
	require.Error(t, err)

	_, err = exporter.Settlement(&models.SettlementResult{}, Format("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestExportEmptyLedgerCSV(t *testing.T) {
	file, err := newTestExporter().Bets(nil, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(file.Data), "\ufeff")), "\n")
	require.Len(t, lines, 1, "header only")
}
