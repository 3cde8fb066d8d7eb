package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
	pkgdiscord "revamp/pkg/discord"
)

var _ output.Announcer = (*Announcer)(nil)

// embedSender is the part of *discordgo.Session used to post announcements.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts newly created events to a community channel.
type Announcer struct {
	sender    embedSender
	channelID string
	loc       *time.Location
	appURL    string
}

func NewAnnouncer(sender embedSender, channelID string, loc *time.Location, appURL string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
		loc:       loc,
		appURL:    strings.TrimRight(appURL, "/"),
	}
}

func (a *Announcer) AnnounceEvent(ctx context.Context, event *entities.Event) error {
	embed := pkgdiscord.EventEmbed(event, a.loc, eventLink(a.appURL, event))
	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}
	return nil
}

func eventLink(appURL string, event *entities.Event) string {
	if appURL == "" {
		return ""
	}
	path := "/events/"
	if event.IsWorkshop() {
		path = "/workshops/"
	}
	return appURL + path + event.ID
}
