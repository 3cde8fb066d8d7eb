package discord

import (
	"context"
	"slices"

	"github.com/bwmarrin/discordgo"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	pkgdiscord "revamp/pkg/discord"
)

const (
	commandEvents    = "events"
	commandWorkshops = "workshops"
)

var commands = []*discordgo.ApplicationCommand{
	{Name: commandEvents, Description: "List upcoming REvamp events"},
	{Name: commandWorkshops, Description: "List upcoming REvamp workshops"},
}

// upcomingResponse lists the next events of kind as embeds.
func (b *Bot) upcomingResponse(ctx context.Context, kind string) (*discordgo.InteractionResponse, error) {
	events, err := b.events.ListEvents(ctx, input.EventQuery{Kind: kind, Status: domain.ListingUpcoming})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		if kind == domain.KindWorkshop {
			return ephemeral("No upcoming workshops right now. Check back soon!"), nil
		}
		return ephemeral("No upcoming events right now. Check back soon!"), nil
	}
	// listings come newest first; the next ones to start lead here
	slices.SortFunc(events, func(a, b entities.Event) int {
		return a.StartsAt.Compare(b.StartsAt)
	})
	embeds := make([]*discordgo.MessageEmbed, 0, pkgdiscord.MaxEmbeds)
	total := 0
	for i := range events {
		if len(embeds) == pkgdiscord.MaxEmbeds {
			break
		}
		embed := pkgdiscord.ListingEmbed(&events[i], b.loc, eventLink(b.appURL, &events[i]))
		if total+pkgdiscord.TextLength(embed) > pkgdiscord.MaxMessageText {
			break
		}
		total += pkgdiscord.TextLength(embed)
		embeds = append(embeds, embed)
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}, nil
}
