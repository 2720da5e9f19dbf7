package bot

import (
	"fmt"
	"strings"

	"lodebook/bot/common"
	"lodebook/ledger"
	"lodebook/models"

	"github.com/bwmarrin/discordgo"
)

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
)

var kindLabels = map[models.BetKind]string{
	models.KindPair:        "Lô",
	models.KindSpecial:     "Đề",
	models.KindCombination: "Xiên",
	models.KindTriple:      "3 càng",
}

var tierLabels = map[models.PrizeTier]string{
	models.TierFirst:   "Giải nhất",
	models.TierSecond:  "Giải nhì",
	models.TierThird:   "Giải ba",
	models.TierFourth:  "Giải tư",
	models.TierFifth:   "Giải năm",
	models.TierSixth:   "Giải sáu",
	models.TierSeventh: "Giải bảy",
}

func kindLabel(kind models.BetKind) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return string(kind)
}

// buildLedgerEmbed renders the current ledger as a fixed-width table
func buildLedgerEmbed(bets []models.Bet, stats map[models.BetKind]ledger.KindStats) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📒 Sổ cược",
		Color: ColorPrimary,
	}

	if len(bets) == 0 {
		embed.Description = "The ledger is empty. Add bets with `/bets add`."
		return embed
	}

	var table strings.Builder
	table.WriteString("```\n")
	table.WriteString(fmt.Sprintf("%-10s %-7s %-14s %s\n", "Id", "Kind", "Numbers", "Stake"))
	table.WriteString(strings.Repeat("-", 44) + "\n")

	for _, bet := range bets {
		numbers := strings.Join(bet.Numbers, " ")
		if len(numbers) > 12 {
			numbers = numbers[:9] + "..."
		}
		table.WriteString(fmt.Sprintf("%-10s %-7s %-14s %s\n",
			shortID(bet.ID), kindLabel(bet.Kind), numbers, common.FormatAmount(bet.Stake)))
	}
	table.WriteString("```")
	embed.Description = table.String()

	var totalStake int64
	var summary []string
	for _, kind := range []models.BetKind{models.KindPair, models.KindSpecial, models.KindCombination, models.KindTriple} {
		if kindStats, ok := stats[kind]; ok {
			totalStake += kindStats.TotalStake
			summary = append(summary, fmt.Sprintf("%s: %d bets, %s", kindLabel(kind), kindStats.Count, common.FormatAmount(kindStats.TotalStake)))
		}
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Totals",
			Value:  fmt.Sprintf("%s\nStaked: **%s**", strings.Join(summary, "\n"), common.FormatAmount(totalStake)),
			Inline: false,
		},
	}
	return embed
}

// buildSettlementEmbed renders one settlement run
func buildSettlementEmbed(result *models.SettlementResult) *discordgo.MessageEmbed {
	color := ColorSuccess
	if result.NetProfit < 0 {
		color = ColorDanger
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎯 Settlement %s", result.Date),
		Color: color,
		Description: fmt.Sprintf("Perspective: **%s**\nStaked: **%s** | Fees: **%s** | Payouts: **%s**",
			result.Role,
			common.FormatAmount(result.TotalStake),
			common.FormatMoney(result.TotalFee),
			common.FormatMoney(result.TotalPayout)),
	}

	for _, breakdown := range result.Kinds {
		var lines []string
		for _, outcome := range breakdown.Outcomes {
			marker := "•"
			if outcome.Hit {
				marker = "✦"
			}
			line := fmt.Sprintf("%s %s x%s", marker, strings.Join(outcome.Numbers, " "), common.FormatAmount(outcome.Stake))
			if outcome.HitCount > 1 {
				line += fmt.Sprintf(" (%d hits)", outcome.HitCount)
			}
			line += fmt.Sprintf(" → %s", common.FormatProfit(outcome.Profit))
			lines = append(lines, line)
		}
		lines = append(lines, fmt.Sprintf("Kind profit: **%s**", common.FormatProfit(breakdown.Profit)))

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   kindLabel(breakdown.Kind),
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Net result",
		Value: fmt.Sprintf("**%s** (%.1f%% of stakes)",
			common.FormatProfit(result.NetProfit), result.ProfitRate*100),
		Inline: false,
	})
	return embed
}

// buildDrawEmbed renders one day's official draw
func buildDrawEmbed(draw *models.DrawResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎰 Kết quả %s", draw.Date),
		Color: ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Đặc biệt",
				Value:  fmt.Sprintf("**%s**", draw.SpecialPrize),
				Inline: false,
			},
		},
	}

	for _, tier := range models.TierOrder {
		numbers := draw.Prizes[tier]
		if len(numbers) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   tierLabels[tier],
			Value:  strings.Join(numbers, "  "),
			Inline: true,
		})
	}
	return embed
}

// buildRatesEmbed renders the active rate table
func buildRatesEmbed(table *models.RateTable) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "⚖️ Rate table",
		Color: ColorPrimary,
	}

	if table.Pair != nil {
		embed.Fields = append(embed.Fields, singleRateField(models.KindPair, table.Pair))
	}
	if table.Special != nil {
		embed.Fields = append(embed.Fields, singleRateField(models.KindSpecial, table.Special))
	}
	if table.Combination != nil {
		var multipliers []string
		for _, size := range []int{2, 3, 4} {
			if m, ok := table.Combination.PayoutMultipliers[size]; ok {
				multipliers = append(multipliers, fmt.Sprintf("xiên %d: ×%g", size, m))
			}
		}
		value := fmt.Sprintf("Fee: ×%g\n%s", table.Combination.StakeFee, strings.Join(multipliers, "\n"))
		if table.Combination.RepeatHits {
			value += "\nRepeated endings multiply the payout"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   kindLabel(models.KindCombination),
			Value:  value,
			Inline: true,
		})
	}
	if table.Triple != nil {
		embed.Fields = append(embed.Fields, singleRateField(models.KindTriple, table.Triple))
	}
	return embed
}

func singleRateField(kind models.BetKind, rate *models.Rate) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:   kindLabel(kind),
		Value:  fmt.Sprintf("Fee: ×%g\nPayout: ×%g", rate.StakeFee, rate.PayoutMultiplier),
		Inline: true,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
