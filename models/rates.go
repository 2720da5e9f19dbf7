package models

import "fmt"

// Rate holds the stake fee and payout multiplier for a single-number bet
// kind. The fee is charged per unit staked regardless of outcome; the payout
// multiplier applies per hit.
type Rate struct {
	StakeFee         float64
	PayoutMultiplier float64
}

// CombinationRate configures combination bets: the payout multiplier depends
// on how many numbers the combination holds, and RepeatHits controls whether
// repeated endings inside one draw multiply the payout.
type CombinationRate struct {
	StakeFee          float64
	PayoutMultipliers map[int]float64
	RepeatHits        bool
}

// RateTable holds the payout configuration per bet kind. A nil entry means
// the kind cannot be settled; settlement fails if such a kind has bets.
type RateTable struct {
	Pair        *Rate
	Special     *Rate
	Combination *CombinationRate
	Triple      *Rate
}

// DefaultRateTable returns the circle's customary rates.
func DefaultRateTable() *RateTable {
	return &RateTable{
		Pair:    &Rate{StakeFee: 21.75, PayoutMultiplier: 80},
		Special: &Rate{StakeFee: 0.83, PayoutMultiplier: 80},
		Combination: &CombinationRate{
			StakeFee:          0.65,
			PayoutMultipliers: map[int]float64{2: 11, 3: 45, 4: 140},
			RepeatHits:        true,
		},
		Triple: &Rate{StakeFee: 0.7, PayoutMultiplier: 400},
	}
}

// Validate rejects negative fee or multiplier values on every present entry.
// Missing entries are legal here; settlement checks completeness against the
// kinds actually being settled.
func (t *RateTable) Validate() error {
	check := func(kind BetKind, name string, v float64) error {
		if v < 0 {
			return &ConfigurationError{Message: fmt.Sprintf("%s.%s must not be negative, got %v", kind, name, v)}
		}
		return nil
	}

	for kind, r := range map[BetKind]*Rate{KindPair: t.Pair, KindSpecial: t.Special, KindTriple: t.Triple} {
		if r == nil {
			continue
		}
		if err := check(kind, "stakeFee", r.StakeFee); err != nil {
			return err
		}
		if err := check(kind, "payoutMultiplier", r.PayoutMultiplier); err != nil {
			return err
		}
	}

	if c := t.Combination; c != nil {
		if err := check(KindCombination, "stakeFee", c.StakeFee); err != nil {
			return err
		}
		for size, m := range c.PayoutMultipliers {
			if err := check(KindCombination, fmt.Sprintf("payoutMultiplier[%d]", size), m); err != nil {
				return err
			}
		}
	}

	return nil
}

// Clone returns a structural deep copy of the rate table.
func (t *RateTable) Clone() *RateTable {
	c := &RateTable{}
	if t.Pair != nil {
		r := *t.Pair
		c.Pair = &r
	}
	if t.Special != nil {
		r := *t.Special
		c.Special = &r
	}
	if t.Triple != nil {
		r := *t.Triple
		c.Triple = &r
	}
	if t.Combination != nil {
		cr := CombinationRate{StakeFee: t.Combination.StakeFee, RepeatHits: t.Combination.RepeatHits}
		cr.PayoutMultipliers = make(map[int]float64, len(t.Combination.PayoutMultipliers))
		for size, m := range t.Combination.PayoutMultipliers {
			cr.PayoutMultipliers[size] = m
		}
		c.Combination = &cr
	}
	return c
}
