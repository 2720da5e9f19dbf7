// Package export renders ledger and settlement data as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lodebook/models"
)

// Format identifies a supported export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

const envelopeVersion = "2.0"

// utf8BOM prefixes CSV output so Excel detects the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFormat maps a user-supplied tag to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// File is a rendered export ready to attach to a message or write to disk.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Exporter renders bets and settlement results as JSON or CSV.
type Exporter struct {
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the timestamp source used in filenames and envelopes.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates a new exporter
func New(opts ...Option) *Exporter {
	e := &Exporter{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// envelope wraps JSON exports so imports can check provenance.
type envelope struct {
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Bets renders the ledger contents in the requested format.
func (e *Exporter) Bets(bets []models.Bet, format Format) (*File, error) {
	switch format {
	case FormatJSON:
		return e.renderJSON("bets", bets)
	case FormatCSV:
		return e.renderCSV("bets", betHeaders, betRows(bets))
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// Settlement renders a settlement run in the requested format. CSV output is
// one row per bet outcome; the run totals live in the JSON form.
func (e *Exporter) Settlement(result *models.SettlementResult, format Format) (*File, error) {
	switch format {
	case FormatJSON:
		return e.renderJSON("settlement", result)
	case FormatCSV:
		return e.renderCSV("settlement", outcomeHeaders, outcomeRows(result))
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

func (e *Exporter) renderJSON(prefix string, data interface{}) (*File, error) {
	payload, err := json.MarshalIndent(envelope{
		Version:   envelopeVersion,
		Timestamp: e.now().UTC(),
		Data:      data,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", prefix, err)
	}
	return &File{
		Name:        e.filename(prefix, FormatJSON),
		ContentType: "application/json",
		Data:        payload,
	}, nil
}

func (e *Exporter) renderCSV(prefix string, headers []string, rows [][]string) (*File, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", prefix, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", prefix, err)
	}
	return &File{
		Name:        e.filename(prefix, FormatCSV),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (e *Exporter) filename(prefix string, format Format) string {
	return fmt.Sprintf("%s_%s.%s", prefix, e.now().UTC().Format("2006-01-02_150405"), format)
}

var betHeaders = []string{"id", "kind", "numbers", "stake", "created_at", "updated_at"}

func betRows(bets []models.Bet) [][]string {
	rows := make([][]string, 0, len(bets))
	for _, bet := range bets {
		rows = append(rows, []string{
			bet.ID,
			string(bet.Kind),
			strings.Join(bet.Numbers, " "),
			strconv.FormatInt(bet.Stake, 10),
			bet.CreatedAt.UTC().Format(time.RFC3339),
			bet.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

var outcomeHeaders = []string{"date", "role", "kind", "numbers", "stake", "hit_count", "payout", "fee", "profit"}

func outcomeRows(result *models.SettlementResult) [][]string {
	var rows [][]string
	for _, breakdown := range result.Kinds {
		for _, outcome := range breakdown.Outcomes {
			rows = append(rows, []string{
				result.Date,
				string(result.Role),
				string(outcome.Kind),
				strings.Join(outcome.Numbers, " "),
				strconv.FormatInt(outcome.Stake, 10),
				strconv.Itoa(outcome.HitCount),
				formatAmount(outcome.Payout),
				formatAmount(outcome.Fee),
				formatAmount(outcome.Profit),
			})
		}
	}
	return rows
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
