package parser

import (
	"fmt"
	"regexp"
	"strings"

	"lodebook/models"
)

// CustomRule expands a shorthand token into a fixed set of 2-digit numbers.
// A rule is either pattern-based (regex plus an expansion function over the
// captured groups) or keyword-based (static lookup from an optional subset
// key to a number list). Rules are scanned in order; the first match wins.
type CustomRule struct {
	ID string

	// Pattern rules.
	Pattern *regexp.Regexp
	Expand  func(match []string) (numbers []string, stake string)

	// Keyword rules.
	Keywords []string
	Sets     map[string][]string
}

// DefaultRules returns the stock shorthand rules: đầu D (all numbers D0..D9),
// đít D (all numbers 0D..9D), and the bộ named sets.
func DefaultRules() []CustomRule {
	return []CustomRule{
		{
			ID:      "dau",
			Pattern: regexp.MustCompile(`(?i)^(đầu|dau)\s*(\d)\s*[` + separators + `]?\s*(\d+)$`),
			Expand: func(m []string) ([]string, string) {
				numbers := make([]string, 0, 10)
				for i := 0; i <= 9; i++ {
					numbers = append(numbers, fmt.Sprintf("%s%d", m[2], i))
				}
				return numbers, m[3]
			},
		},
		{
			ID:      "dit",
			Pattern: regexp.MustCompile(`(?i)^(đít|dit)\s*(\d)\s*[` + separators + `]?\s*(\d+)$`),
			Expand: func(m []string) ([]string, string) {
				numbers := make([]string, 0, 10)
				for i := 0; i <= 9; i++ {
					numbers = append(numbers, fmt.Sprintf("%d%s", i, m[2]))
				}
				return numbers, m[3]
			},
		},
		{
			ID:       "bo",
			Keywords: []string{"bo", "bộ"},
			Sets: map[string][]string{
				"34": {"34", "43", "39", "93", "84", "48", "89", "98"},
			},
		},
	}
}

// applyCustomRules scans the configured rules in order. ok is true when a
// rule matched, whether or not the expansion succeeded.
func (p *Parser) applyCustomRules(content string, kind models.BetKind) (bets []models.Bet, ok bool, err error) {
	for _, rule := range p.rules {
		if rule.Pattern != nil && rule.Expand != nil {
			m := rule.Pattern.FindStringSubmatch(content)
			if m == nil {
				continue
			}
			numbers, stakeText := rule.Expand(m)
			bets, err := ruleBets(numbers, stakeText, kind)
			return bets, true, err
		}

		if len(rule.Keywords) > 0 && rule.Sets != nil {
			for _, keyword := range rule.Keywords {
				pattern, compileErr := regexp.Compile(`(?i)^` + regexp.QuoteMeta(keyword) + `\s*(\d+)?\s*[` + separators + `]?\s*(\d+)$`)
				if compileErr != nil {
					continue
				}
				m := pattern.FindStringSubmatch(content)
				if m == nil {
					continue
				}
				numbers := rule.Sets[m[1]]
				if len(numbers) == 0 {
					numbers = rule.Sets[""]
				}
				if len(numbers) == 0 {
					return nil, true, fmt.Errorf("no number set %q for rule %s", m[1], rule.ID)
				}
				bets, err := ruleBets(numbers, m[2], kind)
				return bets, true, err
			}
		}
	}
	return nil, false, nil
}

// ruleBets builds one bet per expanded number at the current kind. Custom
// rules only ever produce 2-digit numbers, so triple is not a valid target.
func ruleBets(numbers []string, stakeText string, kind models.BetKind) ([]models.Bet, error) {
	if kind == models.KindTriple {
		return nil, fmt.Errorf("expansion rules produce 2-digit numbers, not valid for %s bets", kind)
	}
	stake, err := parseStake(stakeText)
	if err != nil {
		return nil, err
	}

	bets := make([]models.Bet, 0, len(numbers))
	for _, n := range numbers {
		bets = append(bets, models.Bet{
			Kind:    kind,
			Numbers: []string{padNumber(strings.TrimSpace(n), 2)},
			Stake:   stake,
		})
	}
	return bets, nil
}
