package discord

import "github.com/bwmarrin/discordgo"

const (
	commandName = "split"

	subAdd    = "add"
	subRemove = "remove"
	subList   = "list"
	subSettle = "settle"
	subClear  = "clear"
	subQuick  = "quick"

	optName    = "name"
	optAmount  = "amount"
	optIndex   = "index"
	optEntries = "entries"
)

// Commands returns the application commands the bot registers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandName,
			Description: "Split a group expense equally",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subAdd,
					Description: "Add a participant and what they paid",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optName,
							Description: "Participant name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optAmount,
							Description: "Amount paid (default 0)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subRemove,
					Description: "Remove a participant by list position",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        optIndex,
							Description: "Position shown by /split list",
							Required:    true,
							MinValue:    floatPtr(1),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subList,
					Description: "Show the participants in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subSettle,
					Description: "Calculate who pays whom",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subClear,
					Description: "Remove every participant",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subQuick,
					Description: "Settle a list in one go, e.g. \"Alice 90, Bob, Carol 30\"",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optEntries,
							Description: "Comma-separated name and amount pairs",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
