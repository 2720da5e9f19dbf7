package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lodebook/bot/common"
	"lodebook/models"
)

// handleSettleCommand settles the current ledger against a draw. Fetching a
// draw can hit the remote provider, so the response is deferred.
func (b *Bot) handleSettleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := i.ApplicationCommandData().Options

	if b.ledgerService.Len() == 0 {
		b.respondWithError(s, i, "The ledger is empty, nothing to settle.")
		return
	}

	date, err := dateOption(options)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}
	role := b.role(options)

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring settle response: %v", err)
		return
	}

	var result *models.SettlementResult
	if date == "" {
		result, err = b.settlementService.SettleLatest(ctx, role)
	} else {
		result, err = b.settlementService.Settle(ctx, date, role)
	}
	if err != nil {
		var confErr *models.ConfigurationError
		if errors.As(err, &confErr) {
			b.followUpWithError(s, i, confErr.Message)
			return
		}
		log.Printf("Error settling ledger: %v", err)
		b.followUpWithError(s, i, "Unable to settle. The draw may not be published yet.")
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, buildSettlementEmbed(result), nil, false); err != nil {
		log.Printf("Error responding to settle command: %v", err)
	}
}

// handleResultCommand shows one day's official draw
func (b *Bot) handleResultCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	date, err := dateOption(i.ApplicationCommandData().Options)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring result response: %v", err)
		return
	}

	var draw *models.DrawResult
	if date == "" {
		draw, err = b.settlementService.GetLatestDraw(ctx)
	} else {
		draw, err = b.settlementService.GetDraw(ctx, date)
	}
	if err != nil {
		log.Printf("Error fetching draw: %v", err)
		b.followUpWithError(s, i, "Unable to fetch the draw. It may not be published yet.")
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, buildDrawEmbed(draw), nil, false); err != nil {
		log.Printf("Error responding to result command: %v", err)
	}
}

// dateOption extracts and validates an optional yyyy-mm-dd date option.
func dateOption(options []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	for _, opt := range options {
		if opt.Name != "date" {
			continue
		}
		date := opt.StringValue()
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return "", fmt.Errorf("invalid date `%s`, expected yyyy-mm-dd", date)
		}
		return date, nil
	}
	return "", nil
}
