package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lodebook/bot/common"
	"lodebook/models"
)

// handleBetsCommand handles the /bets command with subcommands
func (b *Bot) handleBetsCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand")
		return
	}

	switch options[0].Name {
	case "add":
		b.handleBetsAdd(s, i, options[0].Options)
	case "list":
		b.handleBetsList(s, i)
	case "remove":
		b.handleBetsRemove(s, i, options[0].Options)
	case "clear":
		b.handleBetsClear(s, i)
	case "undo":
		b.handleBetsUndo(s, i)
	case "redo":
		b.handleBetsRedo(s, i)
	case "history":
		b.handleBetsHistory(s, i)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleBetsAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var text string
	for _, opt := range options {
		if opt.Name == "text" {
			text = opt.StringValue()
		}
	}
	// The slash command box swallows newlines, so accept ; and , as line
	// breaks too.
	text = strings.NewReplacer(";", "\n", ",", "\n").Replace(text)

	outcome, err := b.ledgerService.ParseAndAdd(ctx, text)
	if err != nil {
		log.Printf("Error adding bets: %v", err)
		b.respondWithError(s, i, "Unable to save the bets. Please try again.")
		return
	}

	var lines []string
	if count := len(outcome.Added); count > 0 {
		lines = append(lines, fmt.Sprintf("Added **%d** bet(s).", count))
	}
	for _, parseErr := range outcome.ParseErrors {
		lines = append(lines, fmt.Sprintf("Line %d `%s`: %s", parseErr.Line, parseErr.Text, parseErr.Message))
	}
	for _, itemErr := range outcome.ItemErrors {
		lines = append(lines, fmt.Sprintf("Bet %d rejected: %s", itemErr.Index+1, itemErr.Message))
	}
	if len(lines) == 0 {
		lines = append(lines, "Nothing to add.")
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: strings.Join(lines, "\n"),
		},
	})
	if err != nil {
		log.Printf("Error responding to bets add command: %v", err)
	}
}

func (b *Bot) handleBetsList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := buildLedgerEmbed(b.ledgerService.Bets(), b.ledgerService.Statistics())
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to bets list command: %v", err)
	}
}

func (b *Bot) handleBetsRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var id string
	for _, opt := range options {
		if opt.Name == "id" {
			id = strings.TrimSpace(opt.StringValue())
		}
	}

	// /bets list shows truncated ids, so resolve a prefix when unique.
	resolved, err := b.resolveBetID(id)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	removed, err := b.ledgerService.RemoveBet(ctx, resolved)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			b.respondWithError(s, i, fmt.Sprintf("No bet with id `%s`.", id))
			return
		}
		log.Printf("Error removing bet %s: %v", resolved, err)
		b.respondWithError(s, i, "Unable to remove the bet. Please try again.")
		return
	}

	message := fmt.Sprintf("Removed %s **%s** x%s.",
		kindLabel(removed.Kind), strings.Join(removed.Numbers, " "), common.FormatAmount(removed.Stake))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to bets remove command: %v", err)
	}
}

func (b *Bot) handleBetsClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	count := b.ledgerService.Len()
	if count == 0 {
		b.respondWithError(s, i, "The ledger is already empty.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Clear the ledger?",
		Description: fmt.Sprintf("This removes all **%d** bet(s). Undo stays available.", count),
		Color:       ColorWarning,
	}
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Label:    "Clear",
					Style:    discordgo.DangerButton,
					CustomID: "ledger_clear_confirm",
				},
				&discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: "ledger_clear_cancel",
				},
			},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Printf("Error responding to bets clear command: %v", err)
	}
}

// handleClearInteraction resolves the confirm buttons sent by /bets clear
func (b *Bot) handleClearInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	var embed *discordgo.MessageEmbed
	switch customID {
	case "ledger_clear_confirm":
		if err := b.ledgerService.Clear(ctx); err != nil {
			log.Printf("Error clearing ledger: %v", err)
			embed = &discordgo.MessageEmbed{
				Description: "Unable to clear the ledger. Please try again.",
				Color:       ColorDanger,
			}
		} else {
			embed = &discordgo.MessageEmbed{
				Description: "🗑️ Ledger cleared.",
				Color:       ColorSuccess,
			}
		}
	case "ledger_clear_cancel":
		embed = &discordgo.MessageEmbed{
			Description: "Clear cancelled.",
			Color:       ColorPrimary,
		}
	default:
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Printf("Error updating clear confirmation: %v", err)
	}
}

func (b *Bot) handleBetsUndo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	done, err := b.ledgerService.Undo(ctx)
	if err != nil {
		log.Printf("Error undoing ledger change: %v", err)
		b.respondWithError(s, i, "Unable to undo. Please try again.")
		return
	}
	if !done {
		b.respondWithError(s, i, "Nothing to undo.")
		return
	}

	message := fmt.Sprintf("Undone. The ledger now holds %d bet(s).", b.ledgerService.Len())
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to undo command: %v", err)
	}
}

func (b *Bot) handleBetsRedo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	done, err := b.ledgerService.Redo(ctx)
	if err != nil {
		log.Printf("Error redoing ledger change: %v", err)
		b.respondWithError(s, i, "Unable to redo. Please try again.")
		return
	}
	if !done {
		b.respondWithError(s, i, "Nothing to redo.")
		return
	}

	message := fmt.Sprintf("Redone. The ledger now holds %d bet(s).", b.ledgerService.Len())
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to redo command: %v", err)
	}
}

func (b *Bot) handleBetsHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := b.ledgerService.History(15)

	embed := &discordgo.MessageEmbed{
		Title: "🕘 Ledger history",
		Color: ColorPrimary,
	}

	if len(entries) == 0 {
		embed.Description = "No actions recorded yet."
	} else {
		var lines []string
		for _, entry := range entries {
			lines = append(lines, fmt.Sprintf("%s **%s**: %s",
				common.FormatDiscordTimestamp(entry.At, "t"), entry.Action, entry.Summary))
		}
		embed.Description = strings.Join(lines, "\n")
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Printf("Error responding to history command: %v", err)
	}
}

// resolveBetID expands a unique id prefix to the full bet id.
func (b *Bot) resolveBetID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("bet id is required")
	}

	var matches []string
	for _, bet := range b.ledgerService.Bets() {
		if bet.ID == prefix {
			return prefix, nil
		}
		if strings.HasPrefix(bet.ID, prefix) {
			matches = append(matches, bet.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return prefix, nil
	default:
		return "", fmt.Errorf("id `%s` matches %d bets, use more characters", prefix, len(matches))
	}
}
