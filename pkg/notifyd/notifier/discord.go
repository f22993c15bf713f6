package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

const (
	discordColorInfo      = 0x3498db
	discordColorError     = 0xe74c3c
	discordColorSelfError = 0xe67e22
)

// Discord delivers a Message as a single embed through a Discord incoming
// webhook. Webhook delivery needs no bot login, so the session is created
// with an empty token.
type Discord struct {
	session      *discordgo.Session
	webhookID    string
	webhookToken string
	guard        *SSRFGuard
}

func NewDiscord(webhookID, webhookToken string, guard *SSRFGuard) (*Discord, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord: creating session: %w", err)
	}
	if guard != nil {
		session.Client.CheckRedirect = guard.CheckRedirect
	}
	return &Discord{session: session, webhookID: webhookID, webhookToken: webhookToken, guard: guard}, nil
}

func (d *Discord) Deliver(ctx context.Context, msg message.Message) error {
	webhookURL := fmt.Sprintf("https://discord.com/api/webhooks/%s/%s", d.webhookID, d.webhookToken)
	if d.guard != nil {
		if err := d.guard.Check(webhookURL); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:     msg.Title,
		Color:     discordColorFor(msg.Level),
		Author:    &discordgo.MessageEmbedAuthor{Name: string(msg.Component)},
		Fields:    discordFieldsFor(msg.Detail),
		Timestamp: time.UnixMilli(msg.UnixMillis).UTC().Format(time.RFC3339),
	}

	_, err := d.session.WebhookExecute(d.webhookID, d.webhookToken, false, &discordgo.WebhookParams{
		Username: msg.Author,
		Embeds:   []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("discord: delivering webhook: %w", err)
	}
	return nil
}

func discordColorFor(level message.Level) int {
	switch level {
	case message.LevelError:
		return discordColorError
	case message.LevelSelfError:
		return discordColorSelfError
	default:
		return discordColorInfo
	}
}

func discordFieldsFor(d message.MessageDetail) []*discordgo.MessageEmbedField {
	if d.Shape == message.ShapeRaw {
		return []*discordgo.MessageEmbedField{{Name: "Detail", Value: truncateDiscordField(d.Raw)}}
	}

	var fields []*discordgo.MessageEmbedField
	for _, el := range d.Elements {
		if el.Kind != message.ElementSection {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  el.Section.Title,
			Value: truncateDiscordField(renderSpansMarkdown(el.Section.Spans)),
		})
	}
	return fields
}

// truncateDiscordField enforces Discord's 1024-character embed field value
// limit.
func truncateDiscordField(s string) string {
	const max = 1024
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func renderSpansMarkdown(spans []message.Span) string {
	var out string
	for _, s := range spans {
		if s.Style == message.StyleMonospace {
			out += "```\n" + s.Text + "\n```"
		} else {
			out += s.Text
		}
	}
	return out
}
