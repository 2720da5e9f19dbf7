package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"lodebook/bot"
	"lodebook/config"
	"lodebook/database"
	"lodebook/events"
	"lodebook/export"
	"lodebook/ledger"
	"lodebook/lottery"
	"lodebook/parser"
	"lodebook/repository"
	"lodebook/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting lodebook bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	log.Println("Event bus initialized successfully")

	// Initialize stores and the draw provider
	betStore := repository.NewTransactionalBetStore(db)
	rateStore := repository.NewRateRepository(db)
	drawStore := repository.NewDrawRepository(db)
	drawProvider := lottery.NewClient(cfg.LotteryAPIURL)

	// Initialize services
	log.Println("Initializing services...")
	book := ledger.New(ledger.WithMaxDepth(cfg.UndoDepth))
	ledgerService := service.NewLedgerService(book, parser.New(nil), betStore, eventBus)
	rateService := service.NewRateService(rateStore, eventBus)
	settlementService := service.NewSettlementService(ledgerService, rateService, drawStore, drawProvider, eventBus)
	statsService := service.NewStatsService(drawStore)
	log.Println("Services initialized successfully")

	// Reload the ledger persisted by the previous run
	if err := ledgerService.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore ledger: %w", err)
	}

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:       cfg.DiscordToken,
		GuildID:     cfg.DiscordGuildID,
		DefaultRole: cfg.DefaultRole,
	}
	discordBot, err := bot.New(botConfig, ledgerService, settlementService, rateService, statsService, export.New(), eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
