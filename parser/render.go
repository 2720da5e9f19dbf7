package parser

import (
	"fmt"
	"strings"

	"lodebook/models"
)

// RenderLine writes a bet back as a standalone shorthand line that Parse
// would turn into the same bet regardless of the surrounding current kind.
func RenderLine(bet *models.Bet) string {
	switch bet.Kind {
	case models.KindSpecial:
		return fmt.Sprintf("de %sx%d", bet.Number(), bet.Stake)
	case models.KindCombination:
		return fmt.Sprintf("xien %sx%d", strings.Join(bet.Numbers, " "), bet.Stake)
	case models.KindTriple:
		return fmt.Sprintf("3c %sx%d", bet.Number(), bet.Stake)
	default:
		return fmt.Sprintf("lo %sx%d", bet.Number(), bet.Stake)
	}
}

// RenderLines renders a batch of bets, one shorthand line per bet.
func RenderLines(bets []models.Bet) string {
	lines := make([]string, 0, len(bets))
	for i := range bets {
		lines = append(lines, RenderLine(&bets[i]))
	}
	return strings.Join(lines, "\n")
}
