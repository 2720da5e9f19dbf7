package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BetKind identifies the matching rule a bet settles under.
type BetKind string

const (
	// KindPair (lô) wins once per occurrence of its number among all draw endings.
	KindPair BetKind = "pair"
	// KindSpecial (đề) wins only on the special prize's last two digits.
	KindSpecial BetKind = "special"
	// KindCombination (xiên) bets 2-4 numbers that must all appear in the draw.
	KindCombination BetKind = "combination"
	// KindTriple (3 càng) wins on the special prize's last three digits.
	KindTriple BetKind = "triple"
)

// Kinds lists every known bet kind in the order settlement reports them.
var Kinds = []BetKind{KindPair, KindSpecial, KindCombination, KindTriple}

// Valid reports whether k is one of the four known kinds.
func (k BetKind) Valid() bool {
	switch k {
	case KindPair, KindSpecial, KindCombination, KindTriple:
		return true
	}
	return false
}

// Bet is a single recorded wager. Bets are created by the parser or direct
// entry, mutated only through the ledger, and read-only to settlement.
type Bet struct {
	ID        string
	Kind      BetKind
	Numbers   []string
	Stake     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	twoDigits   = regexp.MustCompile(`^\d{2}$`)
	threeDigits = regexp.MustCompile(`^\d{3}$`)
)

// Validate checks the shape invariants for the bet's kind: numeric width,
// entry count, distinctness for combinations, and a positive stake.
func (b *Bet) Validate() error {
	if !b.Kind.Valid() {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", b.Kind)}
	}
	if b.Stake <= 0 {
		return &ValidationError{Field: "stake", Message: "must be a positive amount"}
	}

	switch b.Kind {
	case KindPair, KindSpecial:
		if len(b.Numbers) != 1 {
			return &ValidationError{Field: "numbers", Message: "must contain exactly one number"}
		}
		if !twoDigits.MatchString(b.Numbers[0]) {
			return &ValidationError{Field: "numbers", Message: fmt.Sprintf("%q is not a 2-digit number", b.Numbers[0])}
		}
	case KindTriple:
		if len(b.Numbers) != 1 {
			return &ValidationError{Field: "numbers", Message: "must contain exactly one number"}
		}
		if !threeDigits.MatchString(b.Numbers[0]) {
			return &ValidationError{Field: "numbers", Message: fmt.Sprintf("%q is not a 3-digit number", b.Numbers[0])}
		}
	case KindCombination:
		if len(b.Numbers) < 2 || len(b.Numbers) > 4 {
			return &ValidationError{Field: "numbers", Message: "must contain 2-4 numbers"}
		}
		seen := make(map[string]bool, len(b.Numbers))
		for _, n := range b.Numbers {
			if !twoDigits.MatchString(n) {
				return &ValidationError{Field: "numbers", Message: fmt.Sprintf("%q is not a 2-digit number", n)}
			}
			if seen[n] {
				return &ValidationError{Field: "numbers", Message: fmt.Sprintf("duplicate number %q", n)}
			}
			seen[n] = true
		}
	}

	return nil
}

// Number returns the bet's single number for non-combination kinds.
func (b *Bet) Number() string {
	if len(b.Numbers) == 0 {
		return ""
	}
	return b.Numbers[0]
}

// NumbersLabel renders the bet's numbers for display, e.g. "12,34,56".
func (b *Bet) NumbersLabel() string {
	return strings.Join(b.Numbers, ",")
}

// Clone returns a structural deep copy, including the numbers slice.
func (b *Bet) Clone() Bet {
	c := *b
	c.Numbers = append([]string(nil), b.Numbers...)
	return c
}
