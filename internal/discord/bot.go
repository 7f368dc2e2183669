// Package discord exposes the settlement calculator as a /split slash command.
// Each channel has its own participant roster.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// replyTimeout bounds the work done for a single interaction.
const replyTimeout = 5 * time.Second

// Bot connects a Handler to the Discord gateway.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// New creates a Bot. Call Start to connect.
func New(token string, handler *Handler) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	bot := &Bot{
		session: session,
		handler: handler,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)
	session.Identify.Intents = discordgo.IntentsGuilds

	return bot, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	slog.Info("Discord bot is running")
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// Run starts the bot and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	slog.Info("Stopping Discord bot")
	return b.Stop()
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	slog.Info("Discord connected", "user", event.User.Username, "guilds", len(event.Guilds))

	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", Commands()); err != nil {
		slog.Error("Failed to register commands", "error", err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	args := argsFromOptions(sub.Options)

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	content, err := b.handler.Execute(ctx, i.ChannelID, sub.Name, args)
	if err != nil {
		slog.Error("Split command failed",
			"subcommand", sub.Name,
			"channel_id", i.ChannelID,
			"error", err,
		)
		content = "Something went wrong. Please try again."
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func argsFromOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) Args {
	var args Args
	for _, opt := range opts {
		switch opt.Name {
		case optName:
			args.Name = opt.StringValue()
		case optAmount:
			args.Amount = opt.StringValue()
		case optIndex:
			args.Index = int(opt.IntValue())
		case optEntries:
			args.Entries = opt.StringValue()
		}
	}
	return args
}
