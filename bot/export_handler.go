package bot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lodebook/bot/common"
	"lodebook/export"
	"lodebook/models"
)

// handleExportCommand handles the /export command with subcommands
func (b *Bot) handleExportCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: bets or settlement")
		return
	}

	switch options[0].Name {
	case "bets":
		b.handleExportBets(s, i, options[0].Options)
	case "settlement":
		b.handleExportSettlement(s, i, options[0].Options)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleExportBets(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	format, err := formatOption(options)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	file, err := b.exporter.Bets(b.ledgerService.Bets(), format)
	if err != nil {
		log.Printf("Error exporting bets: %v", err)
		b.respondWithError(s, i, "Unable to export the ledger. Please try again.")
		return
	}

	b.respondWithFile(s, i, fmt.Sprintf("Ledger with %d bet(s).", b.ledgerService.Len()), file)
}

func (b *Bot) handleExportSettlement(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	format, err := formatOption(options)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}
	date, err := dateOption(options)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}
	role := b.role(options)

	if b.ledgerService.Len() == 0 {
		b.respondWithError(s, i, "The ledger is empty, nothing to settle.")
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring export response: %v", err)
		return
	}

	var result *models.SettlementResult
	if date == "" {
		result, err = b.settlementService.SettleLatest(ctx, role)
	} else {
		result, err = b.settlementService.Settle(ctx, date, role)
	}
	if err != nil {
		log.Printf("Error settling for export: %v", err)
		b.followUpWithError(s, i, "Unable to settle. The draw may not be published yet.")
		return
	}

	file, err := b.exporter.Settlement(result, format)
	if err != nil {
		log.Printf("Error exporting settlement: %v", err)
		b.followUpWithError(s, i, "Unable to export the settlement. Please try again.")
		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("Settlement for %s (%s).", result.Date, result.Role),
		Files:   []*discordgo.File{exportAttachment(file)},
	})
	if err != nil {
		log.Printf("Error sending settlement export: %v", err)
	}
}

func (b *Bot) respondWithFile(s *discordgo.Session, i *discordgo.InteractionCreate, message string, file *export.File) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Files:   []*discordgo.File{exportAttachment(file)},
		},
	})
	if err != nil {
		log.Printf("Error sending export response: %v", err)
	}
}

func exportAttachment(file *export.File) *discordgo.File {
	return &discordgo.File{
		Name:        file.Name,
		ContentType: file.ContentType,
		Reader:      bytes.NewReader(file.Data),
	}
}

func formatOption(options []*discordgo.ApplicationCommandInteractionDataOption) (export.Format, error) {
	for _, opt := range options {
		if opt.Name == "format" {
			return export.ParseFormat(opt.StringValue())
		}
	}
	return "", fmt.Errorf("export format is required")
}
