package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

// Slack delivers a Message to a Slack-compatible incoming webhook using
// plain net/http and encoding/json — no Slack SDK dependency.
type Slack struct {
	webhookURL string
	client     *http.Client
	guard      *SSRFGuard
}

func NewSlack(webhookURL string, guard *SSRFGuard) *Slack {
	client := &http.Client{Timeout: 10 * time.Second}
	if guard != nil {
		client.CheckRedirect = guard.CheckRedirect
	}
	return &Slack{webhookURL: webhookURL, client: client, guard: guard}
}

type slackPayload struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color,omitempty"`
	Title  string       `json:"title,omitempty"`
	Fields []slackField `json:"fields,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func (s *Slack) Deliver(ctx context.Context, msg message.Message) error {
	if s.guard != nil {
		if err := s.guard.Check(s.webhookURL); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	payload := slackPayload{
		Text: msg.Title,
		Attachments: []slackAttachment{{
			Color:  slackColorFor(msg.Level),
			Title:  string(msg.Component),
			Fields: slackFieldsFor(msg.Detail),
			Ts:     msg.UnixMillis / 1000,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack: encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: delivering webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func slackColorFor(level message.Level) string {
	switch level {
	case message.LevelError:
		return "#e74c3c"
	case message.LevelSelfError:
		return "#e67e22"
	default:
		return "#3498db"
	}
}

func slackFieldsFor(d message.MessageDetail) []slackField {
	if d.Shape == message.ShapeRaw {
		return []slackField{{Title: "Detail", Value: d.Raw}}
	}
	var fields []slackField
	for _, el := range d.Elements {
		if el.Kind != message.ElementSection {
			continue
		}
		fields = append(fields, slackField{
			Title: el.Section.Title,
			Value: renderSpansPlain(el.Section.Spans),
		})
	}
	return fields
}

func renderSpansPlain(spans []message.Span) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}
