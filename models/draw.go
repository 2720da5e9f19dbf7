package models

// PrizeTier names one level of the official draw below the special prize.
type PrizeTier string

const (
	TierFirst   PrizeTier = "first"
	TierSecond  PrizeTier = "second"
	TierThird   PrizeTier = "third"
	TierFourth  PrizeTier = "fourth"
	TierFifth   PrizeTier = "fifth"
	TierSixth   PrizeTier = "sixth"
	TierSeventh PrizeTier = "seventh"
)

// TierOrder lists the prize tiers in official announcement order.
var TierOrder = []PrizeTier{
	TierFirst, TierSecond, TierThird, TierFourth, TierFifth, TierSixth, TierSeventh,
}

// TierSizes gives the number of winning numbers per tier, fixed by game rules.
var TierSizes = map[PrizeTier]int{
	TierFirst:   1,
	TierSecond:  2,
	TierThird:   6,
	TierFourth:  4,
	TierFifth:   6,
	TierSixth:   3,
	TierSeventh: 4,
}

// DrawResult is one day's official outcome. A missing tier is treated as an
// empty list; settlement only ever looks at number endings.
type DrawResult struct {
	Date         string
	SpecialPrize string
	Prizes       map[PrizeTier][]string
}

// AllEndings returns the last two digits of every winning number across the
// special prize and all tiers. Duplicates are preserved; a pair bet wins once
// per occurrence, so the multiset matters.
func (d *DrawResult) AllEndings() []string {
	endings := make([]string, 0, 28)
	if len(d.SpecialPrize) >= 2 {
		endings = append(endings, d.SpecialPrize[len(d.SpecialPrize)-2:])
	}
	for _, tier := range TierOrder {
		for _, num := range d.Prizes[tier] {
			if len(num) >= 2 {
				endings = append(endings, num[len(num)-2:])
			}
		}
	}
	return endings
}

// EndingCounts returns the frequency of each 2-digit ending in the draw.
func (d *DrawResult) EndingCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range d.AllEndings() {
		counts[e]++
	}
	return counts
}

// SpecialEnding2 returns the special prize's last two digits, or "" when the
// prize is shorter than two digits. The empty string matches no valid bet.
func (d *DrawResult) SpecialEnding2() string {
	if len(d.SpecialPrize) < 2 {
		return ""
	}
	return d.SpecialPrize[len(d.SpecialPrize)-2:]
}

// SpecialEnding3 returns the special prize's last three digits, or "" when
// the prize is shorter than three digits.
func (d *DrawResult) SpecialEnding3() string {
	if len(d.SpecialPrize) < 3 {
		return ""
	}
	return d.SpecialPrize[len(d.SpecialPrize)-3:]
}

// Clone returns a structural deep copy of the draw result.
func (d *DrawResult) Clone() DrawResult {
	c := DrawResult{Date: d.Date, SpecialPrize: d.SpecialPrize}
	if d.Prizes != nil {
		c.Prizes = make(map[PrizeTier][]string, len(d.Prizes))
		for tier, nums := range d.Prizes {
			c.Prizes[tier] = append([]string(nil), nums...)
		}
	}
	return c
}
