package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"revamp/internal/domain/entities"
	"revamp/pkg/datetime"
	"revamp/pkg/money"
)

const (
	embedColor    = 0x5865F2
	workshopColor = 0x57F287
	// Discord rejects embed descriptions longer than this.
	maxDescription = 4096
	// MaxEmbeds is the number of embeds Discord accepts in one message.
	MaxEmbeds = 10
	// MaxMessageText caps the combined text of all embeds in one message.
	MaxMessageText = 6000
	// listingDescription keeps a full page of listing embeds under
	// MaxMessageText.
	listingDescription = 300
)

func formatPrice(e *entities.Event) string {
	if e.IsFree {
		return "Free"
	}
	return money.FormatINR(e.Price)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// EventEmbed builds the announcement of an event. link, when set, is the
// page students open to register.
func EventEmbed(e *entities.Event, loc *time.Location, link string) *discordgo.MessageEmbed {
	title := "📅 " + e.Title
	color := embedColor
	if e.IsWorkshop() {
		title = "🛠️ Workshop: " + e.Title
		color = workshopColor
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "When", Value: datetime.Format(e.StartsAt, loc), Inline: true},
		{Name: "Where", Value: e.Location, Inline: true},
		{Name: "Price", Value: formatPrice(e), Inline: true},
		{Name: "Seats", Value: fmt.Sprintf("%d", e.Capacity), Inline: true},
	}
	if len(e.Domains) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Domains", Value: strings.Join(e.Domains, ", ")})
	}
	if e.IsWorkshop() && e.Prerequisites != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Prerequisites", Value: truncate(e.Prerequisites, 1024)})
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncate(title, 256),
		Description: truncate(e.Description, maxDescription),
		URL:         link,
		Color:       color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Register on REvamp"},
	}
	if e.BannerURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: e.BannerURL}
	}
	return embed
}

// ListingEmbed is EventEmbed with a short description, for messages that
// carry several events.
func ListingEmbed(e *entities.Event, loc *time.Location, link string) *discordgo.MessageEmbed {
	embed := EventEmbed(e, loc, link)
	embed.Description = truncate(embed.Description, listingDescription)
	return embed
}

// TextLength counts the embed characters Discord holds against
// MaxMessageText.
func TextLength(embed *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(embed.Title) + utf8.RuneCountInString(embed.Description)
	for _, f := range embed.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if embed.Footer != nil {
		n += utf8.RuneCountInString(embed.Footer.Text)
	}
	if embed.Author != nil {
		n += utf8.RuneCountInString(embed.Author.Name)
	}
	return n
}
