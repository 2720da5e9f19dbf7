package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lodebook/bot/common"
	"lodebook/service"
)

const defaultStatsDraws = 30

// handleStatsCommand handles the /stats command with subcommands
func (b *Bot) handleStatsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: hot, cold or exposure")
		return
	}

	switch options[0].Name {
	case "hot":
		b.handleStatsRanking(s, i, options[0].Options, true)
	case "cold":
		b.handleStatsRanking(s, i, options[0].Options, false)
	case "exposure":
		b.handleStatsExposure(s, i)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleStatsRanking(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption, hot bool) {
	ctx := context.Background()

	drawCount := defaultStatsDraws
	for _, opt := range options {
		if opt.Name == "draws" && opt.IntValue() > 0 {
			drawCount = int(opt.IntValue())
		}
	}

	var entries []service.NumberFrequency
	var err error
	var title string
	if hot {
		entries, err = b.statsService.HotNumbers(ctx, drawCount, 10)
		title = "🔥 Hot numbers"
	} else {
		entries, err = b.statsService.ColdNumbers(ctx, drawCount, 10)
		title = "🧊 Cold numbers"
	}
	if err != nil {
		log.Printf("Error computing number statistics: %v", err)
		b.respondWithError(s, i, "Unable to compute statistics. Please try again.")
		return
	}

	var table strings.Builder
	table.WriteString("```\n")
	table.WriteString(fmt.Sprintf("%-6s %-8s %s\n", "Rank", "Number", "Hits"))
	table.WriteString(strings.Repeat("-", 22) + "\n")
	for rank, entry := range entries {
		table.WriteString(fmt.Sprintf("%-6s %-8s %d\n", fmt.Sprintf("#%d", rank+1), entry.Number, entry.Count))
	}
	table.WriteString("```")

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: table.String(),
		Color:       ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Over the last %d draws", drawCount),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to numbers command: %v", err)
	}
}

func (b *Bot) handleStatsExposure(s *discordgo.Session, i *discordgo.InteractionCreate) {
	exposure := b.statsService.LedgerExposure(b.ledgerService.Bets())

	embed := &discordgo.MessageEmbed{
		Title: "💰 Ledger exposure",
		Color: ColorPrimary,
	}

	if len(exposure) == 0 {
		embed.Description = "The ledger is empty."
	} else {
		var table strings.Builder
		table.WriteString("```\n")
		table.WriteString(fmt.Sprintf("%-8s %s\n", "Number", "Staked"))
		table.WriteString(strings.Repeat("-", 20) + "\n")
		for _, entry := range exposure {
			table.WriteString(fmt.Sprintf("%-8s %s\n", entry.Number, common.FormatAmount(entry.TotalStake)))
		}
		table.WriteString("```")
		embed.Description = table.String()
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to exposure command: %v", err)
	}
}
