// Package lottery fetches northern-region draw results from the public
// results provider and adapts them to the domain model.
package lottery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"lodebook/models"
)

// cacheTTL bounds how long a fetched draw stays fresh.
const cacheTTL = 5 * time.Minute

// publishCutoff is the local time after which today's draw is available.
// Before it, "latest" means yesterday.
var publishCutoffHour, publishCutoffMinute = 18, 35

// Client fetches draw results over HTTP with a small in-memory cache.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	now     func() time.Time

	cacheMu sync.Mutex
	cache   map[string]cacheEntry
}

type cacheEntry struct {
	draw      *models.DrawResult
	fetchedAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient returns a Client against the given provider base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// providerResponse is the provider's envelope. The draw itself is a JSON
// array encoded as a string inside the first issue.
type providerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	T       struct {
		IssueList []providerIssue `json:"issueList"`
	} `json:"t"`
}

type providerIssue struct {
	TurnNum string `json:"turnNum"`
	Detail  string `json:"detail"`
}

// FetchResult returns the draw for the given date (yyyy-mm-dd). A missing
// date is retried once with the day-first format some provider records use.
func (c *Client) FetchResult(ctx context.Context, date string) (*models.DrawResult, error) {
	if cached := c.fromCache(date); cached != nil {
		log.WithField("date", date).Debug("Draw result served from cache")
		return cached, nil
	}

	draw, err := c.fetch(ctx, date)
	if err != nil {
		if isNotFound(err) {
			if alt := convertDateFormat(date); alt != date {
				log.WithFields(log.Fields{
					"date":    date,
					"altDate": alt,
				}).Debug("Retrying draw fetch with alternate date format")
				draw, err = c.fetch(ctx, alt)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	c.store(date, draw)
	return draw, nil
}

// FetchLatest returns the most recent published draw. Draws publish at
// 18:35 local time, so earlier in the day "latest" is yesterday's.
func (c *Client) FetchLatest(ctx context.Context) (*models.DrawResult, error) {
	return c.FetchResult(ctx, c.latestDate())
}

// FetchRange returns the draws between two dates inclusive, skipping days
// that fail to fetch.
func (c *Client) FetchRange(ctx context.Context, startDate, endDate string) ([]*models.DrawResult, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	var draws []*models.DrawResult
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		draw, err := c.FetchResult(ctx, date)
		if err != nil {
			log.WithError(err).WithField("date", date).Warn("Skipping draw in range fetch")
			continue
		}
		draws = append(draws, draw)
	}
	return draws, nil
}

// ClearCache drops all cached draws.
func (c *Client) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

func (c *Client) fetch(ctx context.Context, date string) (*models.DrawResult, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s?date=%s", c.baseURL, date))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("fetch draw for %s: %w", date, err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("fetch draw for %s: %w", date, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("draw provider returned status %d for %s", resp.StatusCode(), date)
	}

	var payload providerResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode draw response for %s: %w", date, err)
	}
	if !payload.Success {
		message := payload.Message
		if message == "" {
			message = "provider reported failure"
		}
		return nil, fmt.Errorf("draw provider error for %s: %s", date, message)
	}

	return parseIssue(payload.T.IssueList)
}

// parseIssue converts the provider's issue list into a DrawResult. The
// detail field holds a flat JSON string array: special prize, first prize,
// then the lower tiers in order.
func parseIssue(issues []providerIssue) (*models.DrawResult, error) {
	if len(issues) == 0 {
		return nil, fmt.Errorf("draw response has no issues")
	}
	issue := issues[0]

	var detail []string
	if err := json.Unmarshal([]byte(issue.Detail), &detail); err != nil {
		return nil, fmt.Errorf("decode draw detail: %w", err)
	}
	if len(detail) < 2 {
		return nil, fmt.Errorf("draw detail too short: %d entries", len(detail))
	}

	draw := &models.DrawResult{
		Date:         issue.TurnNum,
		SpecialPrize: strings.TrimSpace(detail[0]),
		Prizes:       make(map[models.PrizeTier][]string),
	}

	draw.Prizes[models.TierFirst] = splitPrizeField(detail[1])

	// Lower tiers follow, one slot per prize. Some records pack several
	// comma-separated numbers into one slot.
	index := 2
	for _, tier := range models.TierOrder[1:] {
		for i := 0; i < models.TierSizes[tier] && index < len(detail); i++ {
			draw.Prizes[tier] = append(draw.Prizes[tier], splitPrizeField(detail[index])...)
			index++
		}
	}

	return draw, nil
}

func splitPrizeField(field string) []string {
	var numbers []string
	for _, part := range strings.Split(field, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			numbers = append(numbers, trimmed)
		}
	}
	return numbers
}

func (c *Client) latestDate() string {
	now := c.now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), publishCutoffHour, publishCutoffMinute, 0, 0, now.Location())
	if now.Before(cutoff) {
		now = now.AddDate(0, 0, -1)
	}
	return now.Format("2006-01-02")
}

func (c *Client) fromCache(date string) *models.DrawResult {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	entry, ok := c.cache[date]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.fetchedAt) > cacheTTL {
		delete(c.cache, date)
		return nil
	}
	copied := entry.draw.Clone()
	return &copied
}

func (c *Client) store(date string, draw *models.DrawResult) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	copied := draw.Clone()
	c.cache[date] = cacheEntry{draw: &copied, fetchedAt: c.now()}
}

// convertDateFormat flips yyyy-mm-dd to dd-mm-yyyy and back.
func convertDateFormat(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Không tìm thấy")
}
