package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"lodebook/models"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Lottery provider configuration
	LotteryAPIURL string

	// Ledger configuration
	UndoDepth   int
	DefaultRole models.Role

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Lottery provider
		LotteryAPIURL: os.Getenv("LOTTERY_API_URL"),

		// Ledger defaults
		UndoDepth:   50,
		DefaultRole: models.RoleOwner,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if depth := os.Getenv("UNDO_DEPTH"); depth != "" {
		parsedDepth, err := strconv.Atoi(depth)
		if err != nil || parsedDepth <= 0 {
			return nil, fmt.Errorf("UNDO_DEPTH must be a positive integer, got %q", depth)
		}
		config.UndoDepth = parsedDepth
	}
	if role := os.Getenv("DEFAULT_ROLE"); role != "" {
		parsedRole := models.Role(role)
		if !parsedRole.Valid() {
			return nil, fmt.Errorf("DEFAULT_ROLE must be %q or %q, got %q", models.RoleOwner, models.RolePlayer, role)
		}
		config.DefaultRole = parsedRole
	}

	if config.LotteryAPIURL == "" {
		config.LotteryAPIURL = "https://lode.sontruog.cloud/lottery-proxy-sheets-v3.php"
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
