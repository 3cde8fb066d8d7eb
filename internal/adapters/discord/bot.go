package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"revamp/internal/domain"
	"revamp/internal/ports/input"
)

// Bot is the Discord adapter: it announces events and answers slash
// commands listing upcoming events.
type Bot struct {
	session   *discordgo.Session
	events    input.EventUseCase
	channelID string
	loc       *time.Location
	appURL    string
	logger    *zap.Logger
}

// NewBot creates the session. Slash commands need SetEvents before Run.
func NewBot(token, channelID, appURL string, loc *time.Location, logger *zap.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	b := &Bot{
		session:   s,
		channelID: channelID,
		loc:       loc,
		appURL:    appURL,
		logger:    logger,
	}
	s.AddHandler(b.handleInteraction)
	return b, nil
}

// Announcer returns an output.Announcer posting through the bot's session.
func (b *Bot) Announcer() *Announcer {
	return NewAnnouncer(b.session, b.channelID, b.loc, b.appURL)
}

// SetEvents wires the use case answering slash commands.
func (b *Bot) SetEvents(events input.EventUseCase) {
	b.events = events
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || b.events == nil {
		return
	}
	kind := domain.KindEvent
	switch i.ApplicationCommandData().Name {
	case commandEvents:
	case commandWorkshops:
		kind = domain.KindWorkshop
	default:
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := b.upcomingResponse(ctx, kind)
	if err != nil {
		b.logger.Error("discord: list upcoming", zap.String("kind", kind), zap.Error(err))
		respondEphemeral(s, i.Interaction, "Something went wrong. Please try again.")
		return
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		b.logger.Warn("discord: respond", zap.Error(err))
	}
}

// Run opens the gateway, registers the slash commands and blocks until ctx
// is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			b.logger.Warn("discord: register command", zap.String("command", cmd.Name), zap.Error(err))
		}
	}
	b.logger.Info("discord bot online")
	<-ctx.Done()
	return nil
}
