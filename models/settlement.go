package models

// Role is the perspective used to sign a settlement's net profit.
type Role string

const (
	// RoleOwner is the house: collects fees, pays out winnings.
	RoleOwner Role = "owner"
	// RolePlayer is the bettor: pays fees, collects winnings.
	RolePlayer Role = "player"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RolePlayer
}

// BetOutcome is the settled result of a single bet, from the bettor's
// perspective before role inversion.
type BetOutcome struct {
	BetID    string
	Kind     BetKind
	Numbers  []string
	Stake    int64
	HitCount int
	Hit      bool
	Payout   float64
	Fee      float64
	Profit   float64
}

// KindBreakdown aggregates outcomes for one bet kind.
type KindBreakdown struct {
	Kind        BetKind
	TotalStake  int64
	TotalFee    float64
	TotalPayout float64
	Profit      float64
	Outcomes    []BetOutcome
}

// SettlementResult is the output of one settlement run. It is never mutated;
// each run produces a fresh value.
type SettlementResult struct {
	Date        string
	Role        Role
	Kinds       []KindBreakdown
	TotalStake  int64
	TotalFee    float64
	TotalPayout float64
	NetProfit   float64
	ProfitRate  float64
}
