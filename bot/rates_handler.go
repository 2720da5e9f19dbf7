package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"lodebook/bot/common"
	"lodebook/models"
)

// handleRatesCommand handles the /rates command with subcommands
func (b *Bot) handleRatesCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: view or set")
		return
	}

	switch options[0].Name {
	case "view":
		b.handleRatesView(s, i)
	case "set":
		b.handleRatesSet(s, i, options[0].Options)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleRatesView(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	table, err := b.rateService.GetRates(ctx)
	if err != nil {
		log.Printf("Error loading rates: %v", err)
		b.respondWithError(s, i, "Unable to load the rate table. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildRatesEmbed(table), nil, false); err != nil {
		log.Printf("Error responding to rates view command: %v", err)
	}
}

func (b *Bot) handleRatesSet(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var kind models.BetKind
	var fee, payout float64
	for _, opt := range options {
		switch opt.Name {
		case "kind":
			kind = models.BetKind(opt.StringValue())
		case "fee":
			fee = opt.FloatValue()
		case "payout":
			payout = opt.FloatValue()
		}
	}

	err := b.rateService.UpdateKindRate(ctx, kind, models.Rate{StakeFee: fee, PayoutMultiplier: payout})
	if err != nil {
		var validationErr *models.ValidationError
		var confErr *models.ConfigurationError
		switch {
		case errors.As(err, &validationErr):
			b.respondWithError(s, i, validationErr.Error())
		case errors.As(err, &confErr):
			b.respondWithError(s, i, confErr.Message)
		default:
			log.Printf("Error updating rate for %s: %v", kind, err)
			b.respondWithError(s, i, "Unable to save the rate. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("%s now pays ×%g with fee ×%g.", kindLabel(kind), payout, fee)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Printf("Error responding to rates set command: %v", err)
	}
}
