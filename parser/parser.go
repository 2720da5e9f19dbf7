// Package parser turns free-text betting shorthand into structured bet
// records. Input is parsed line by line; a bad line is reported and never
// aborts the rest of the batch.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lodebook/models"
)

// LineError reports one input line the parser could not understand.
type LineError struct {
	Line    int
	Text    string
	Message string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Message)
}

// Result carries the bets parsed from a batch plus every per-line error.
// Bets follow input line order, then within-line expansion order.
type Result struct {
	Bets   []models.Bet
	Errors []LineError
}

// Parser matches shorthand lines against an ordered list of grammars. The
// keyword and separator sets are a stable protocol: users type them from
// muscle memory, so they must not drift.
type Parser struct {
	rules []CustomRule
}

// New returns a parser with the given custom expansion rules. Passing nil
// uses DefaultRules.
func New(rules []CustomRule) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Parser{rules: rules}
}

// Separators users may type between numbers and stake.
const separators = `x*×=:\-`

var (
	kindPrefixPattern = regexp.MustCompile(`(?i)^(lô|lo|đề|de)(?:\s+(.+))?$`)

	rotatingPattern    = regexp.MustCompile(`(?i)^(?:xiên\s*quay|xien\s*quay|xq)\s+((?:\d{2}\s*){2,4})[` + separators + `]\s*(\d+)$`)
	combinationPattern = regexp.MustCompile(`(?i)^(?:xiên|xien)\s+((?:\d{2}\s*){2,4})[` + separators + `]\s*(\d+)$`)
	triplePattern      = regexp.MustCompile(`(?i)^(?:3c|3\s*càng|3cang|ba\s*số)\s+((?:\d{3}\s*)+)[` + separators + `]\s*(\d+)$`)
	multiplePattern    = regexp.MustCompile(`^(\d{2,3}(?:\s+\d{2,3})+)\s*[` + separators + `]\s*(\d+)$`)
	singlePattern      = regexp.MustCompile(`^(\d{2,3})\s*[` + separators + `]\s*(\d+)$`)
)

// Parse processes a multi-line batch. The current kind starts as Pair and
// persists across lines until a kind-prefix line switches it.
func (p *Parser) Parse(text string) *Result {
	result := &Result{}
	currentKind := models.KindPair

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		bets, newKind, err := p.parseLine(line, currentKind)
		if newKind != "" {
			currentKind = newKind
		}
		if err != nil {
			result.Errors = append(result.Errors, LineError{Line: i + 1, Text: line, Message: err.Error()})
			continue
		}
		result.Bets = append(result.Bets, bets...)
	}

	return result
}

// parseLine tries each grammar in precedence order and returns the bets of
// the first match. newKind is non-empty when the line switches the current
// kind for subsequent lines.
func (p *Parser) parseLine(line string, currentKind models.BetKind) (bets []models.Bet, newKind models.BetKind, err error) {
	content := line
	kind := currentKind

	if m := kindPrefixPattern.FindStringSubmatch(line); m != nil {
		kind = normalizeKind(m[1])
		newKind = kind
		content = strings.TrimSpace(m[2])
		if content == "" {
			// Bare kind line: switches the kind, records nothing.
			return nil, newKind, nil
		}
	}

	if m := rotatingPattern.FindStringSubmatch(content); m != nil {
		bets, err = parseRotating(m)
		return bets, newKind, err
	}
	if m := combinationPattern.FindStringSubmatch(content); m != nil {
		bets, err = parseCombination(m)
		return bets, newKind, err
	}
	if m := triplePattern.FindStringSubmatch(content); m != nil {
		bets, err = parseTriples(m)
		if err == nil {
			// A triple keyword line switches the kind so bare 3-digit
			// lines that follow stay triples.
			newKind = models.KindTriple
		}
		return bets, newKind, err
	}
	if bets, ok, ruleErr := p.applyCustomRules(content, kind); ok {
		return bets, newKind, ruleErr
	}
	if m := multiplePattern.FindStringSubmatch(content); m != nil {
		bets, err = parseNumbers(strings.Fields(m[1]), m[2], kind)
		return bets, newKind, err
	}
	if m := singlePattern.FindStringSubmatch(content); m != nil {
		bets, err = parseNumbers([]string{m[1]}, m[2], kind)
		return bets, newKind, err
	}

	return nil, newKind, fmt.Errorf("unrecognized shorthand")
}

// parseRotating fans one line into every combination of size 2..len(numbers),
// each as an independent combination bet.
func parseRotating(m []string) ([]models.Bet, error) {
	numbers, stake, err := combinationOperands(m)
	if err != nil {
		return nil, err
	}

	var bets []models.Bet
	for size := 2; size <= len(numbers) && size <= 4; size++ {
		for _, combo := range combinations(numbers, size) {
			bets = append(bets, models.Bet{
				Kind:    models.KindCombination,
				Numbers: combo,
				Stake:   stake,
			})
		}
	}
	return bets, nil
}

func parseCombination(m []string) ([]models.Bet, error) {
	numbers, stake, err := combinationOperands(m)
	if err != nil {
		return nil, err
	}
	return []models.Bet{{
		Kind:    models.KindCombination,
		Numbers: numbers,
		Stake:   stake,
	}}, nil
}

// combinationOperands extracts and validates the number list and stake shared
// by the combination and rotating-combination grammars. Duplicate numbers are
// an error, never a silent dedup.
func combinationOperands(m []string) ([]string, int64, error) {
	fields := strings.Fields(m[1])
	numbers := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, n := range splitPairs(fields) {
		if seen[n] {
			return nil, 0, fmt.Errorf("duplicate number %q in combination", n)
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	if len(numbers) < 2 || len(numbers) > 4 {
		return nil, 0, fmt.Errorf("combination needs 2-4 numbers, got %d", len(numbers))
	}

	stake, err := parseStake(m[2])
	if err != nil {
		return nil, 0, err
	}
	return numbers, stake, nil
}

// splitPairs re-splits fields the regex allowed to run together ("1234" is
// the pair 12 followed by 34).
func splitPairs(fields []string) []string {
	var out []string
	for _, f := range fields {
		for len(f) >= 2 {
			out = append(out, f[:2])
			f = f[2:]
		}
	}
	return out
}

func parseTriples(m []string) ([]models.Bet, error) {
	stake, err := parseStake(m[2])
	if err != nil {
		return nil, err
	}

	var bets []models.Bet
	for _, f := range strings.Fields(m[1]) {
		for len(f) >= 3 {
			bets = append(bets, models.Bet{
				Kind:    models.KindTriple,
				Numbers: []string{f[:3]},
				Stake:   stake,
			})
			f = f[3:]
		}
	}
	if len(bets) == 0 {
		return nil, fmt.Errorf("triple bets need 3-digit numbers")
	}
	return bets, nil
}

// parseNumbers handles the explicit-number grammars. Under non-triple kinds a
// 3-digit token is shorthand for its two overlapping pairs.
func parseNumbers(tokens []string, stakeText string, kind models.BetKind) ([]models.Bet, error) {
	stake, err := parseStake(stakeText)
	if err != nil {
		return nil, err
	}

	var bets []models.Bet
	for _, tok := range tokens {
		switch {
		case len(tok) == 2 && kind != models.KindTriple:
			bets = append(bets, models.Bet{Kind: kind, Numbers: []string{tok}, Stake: stake})
		case len(tok) == 3 && kind == models.KindTriple:
			bets = append(bets, models.Bet{Kind: models.KindTriple, Numbers: []string{tok}, Stake: stake})
		case len(tok) == 3:
			for _, pair := range expandTriple(tok) {
				bets = append(bets, models.Bet{Kind: kind, Numbers: []string{pair}, Stake: stake})
			}
		default:
			return nil, fmt.Errorf("number %q is not valid for %s bets", tok, kind)
		}
	}
	return bets, nil
}

// expandTriple returns the two overlapping 2-digit substrings of a 3-digit
// number: "123" bets both "12" and "23". The two coincide for repdigits.
func expandTriple(num string) []string {
	first, last := num[:2], num[1:]
	if first == last {
		return []string{first}
	}
	return []string{first, last}
}

// combinations returns all k-element subsets of numbers, preserving input
// order within each subset.
func combinations(numbers []string, k int) [][]string {
	var result [][]string
	combo := make([]string, 0, k)

	var backtrack func(start int)
	backtrack = func(start int) {
		if len(combo) == k {
			result = append(result, append([]string(nil), combo...))
			return
		}
		for i := start; i < len(numbers); i++ {
			combo = append(combo, numbers[i])
			backtrack(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	backtrack(0)
	return result
}

func parseStake(text string) (int64, error) {
	stake, err := strconv.ParseInt(text, 10, 64)
	if err != nil || stake <= 0 {
		return 0, fmt.Errorf("invalid stake %q", text)
	}
	return stake, nil
}

func normalizeKind(prefix string) models.BetKind {
	switch strings.ToLower(prefix) {
	case "đề", "de":
		return models.KindSpecial
	default:
		return models.KindPair
	}
}

// padNumber left-pads a numeric token with zeros to the given width.
func padNumber(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
