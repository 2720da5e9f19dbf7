package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var roleChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "owner (chủ)", Value: "owner"},
	{Name: "player (người chơi)", Value: "player"},
}

var formatChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "json", Value: "json"},
	{Name: "csv", Value: "csv"},
}

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "bets",
			Description: "Record and manage the day's bets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add bets from shorthand text, one bet per line",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "Bet lines, e.g. \"25x10000\" or \"de 68x5000\"",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the current ledger",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove one bet by its id",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Bet id as shown by /bets list",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Remove every bet from the ledger",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Undo the last ledger change",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "redo",
					Description: "Redo the last undone change",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show recent ledger actions",
				},
			},
		},
		{
			Name:        "settle",
			Description: "Settle the ledger against a draw result",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "date",
					Description: "Draw date yyyy-mm-dd (defaults to the latest published draw)",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "role",
					Description: "Settle from the owner's or the player's side",
					Required:    false,
					Choices:     roleChoices,
				},
			},
		},
		{
			Name:        "result",
			Description: "Show a draw result",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "date",
					Description: "Draw date yyyy-mm-dd (defaults to the latest published draw)",
					Required:    false,
				},
			},
		},
		{
			Name:        "rates",
			Description: "View or change the payout rates",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show the active rate table",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Change the rate for one bet kind",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "kind",
							Description: "Bet kind to change",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "lô (pair)", Value: "pair"},
								{Name: "đề (special)", Value: "special"},
								{Name: "3 càng (triple)", Value: "triple"},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "fee",
							Description: "Stake fee multiplier",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "payout",
							Description: "Payout multiplier per hit",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "stats",
			Description: "Number statistics over recent draws",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "hot",
					Description: "Most drawn numbers",
					Options:     []*discordgo.ApplicationCommandOption{drawCountOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cold",
					Description: "Least drawn numbers",
					Options:     []*discordgo.ApplicationCommandOption{drawCountOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "exposure",
					Description: "Stake riding on each number in the ledger",
				},
			},
		},
		{
			Name:        "export",
			Description: "Export the ledger or a settlement as a file",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bets",
					Description: "Export the current ledger",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "format",
							Description: "File format",
							Required:    true,
							Choices:     formatChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "settlement",
					Description: "Settle and export the outcome",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "format",
							Description: "File format",
							Required:    true,
							Choices:     formatChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "date",
							Description: "Draw date yyyy-mm-dd (defaults to the latest published draw)",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "role",
							Description: "Settle from the owner's or the player's side",
							Required:    false,
							Choices:     roleChoices,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func drawCountOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "draws",
		Description: "How many recent draws to count (default 30)",
		Required:    false,
	}
}
