package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"lodebook/events"
	"lodebook/export"
	"lodebook/models"
	"lodebook/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token       string
	GuildID     string
	DefaultRole models.Role
}

type Bot struct {
	config            Config
	session           *discordgo.Session
	ledgerService     *service.LedgerService
	settlementService *service.SettlementService
	rateService       *service.RateService
	statsService      *service.StatsService
	exporter          *export.Exporter
	eventBus          *events.Bus
}

func New(config Config, ledgerService *service.LedgerService, settlementService *service.SettlementService, rateService *service.RateService, statsService *service.StatsService, exporter *export.Exporter, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:            config,
		session:           dg,
		ledgerService:     ledgerService,
		settlementService: settlementService,
		rateService:       rateService,
		statsService:      statsService,
		exporter:          exporter,
		eventBus:          eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleLedgerInteraction)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Mirror the ledger size in the bot presence
	eventBus.Subscribe(events.EventTypeBetsChanged, func(ctx context.Context, event events.Event) {
		if changed, ok := event.(events.BetsChangedEvent); ok {
			status := fmt.Sprintf("%d bets on the book", changed.BetCount)
			if err := dg.UpdateGameStatus(0, status); err != nil {
				log.Errorf("Failed to update bot status: %v", err)
			}
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "bets":
		b.handleBetsCommand(s, i)
	case "settle":
		b.handleSettleCommand(s, i)
	case "result":
		b.handleResultCommand(s, i)
	case "rates":
		b.handleRatesCommand(s, i)
	case "stats":
		b.handleStatsCommand(s, i)
	case "export":
		b.handleExportCommand(s, i)
	}
}

// handleLedgerInteraction handles the confirm buttons on destructive ledger
// actions
func (b *Bot) handleLedgerInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, "ledger_clear_") {
		b.handleClearInteraction(s, i, customID)
	}
}

// role resolves the role option on settlement commands, falling back to the
// configured default perspective.
func (b *Bot) role(options []*discordgo.ApplicationCommandInteractionDataOption) models.Role {
	for _, opt := range options {
		if opt.Name == "role" {
			if role := models.Role(opt.StringValue()); role.Valid() {
				return role
			}
		}
	}
	return b.config.DefaultRole
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending error response: %v", err)
	}
}

// followUpWithError sends an error message as a follow-up to a deferred interaction
func (b *Bot) followUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("Error sending follow-up error message: %v", err)
	}
}
