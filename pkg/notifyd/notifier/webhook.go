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

// Webhook delivers a Message as generic JSON to an operator-configured URL,
// with optional extra headers (e.g. an API key). The simplest backend,
// used for custom alerting pipelines that don't speak Discord or Slack.
type Webhook struct {
	url     string
	headers map[string]string
	client  *http.Client
	guard   *SSRFGuard
}

func NewWebhook(url string, headers map[string]string, guard *SSRFGuard) *Webhook {
	client := &http.Client{Timeout: 10 * time.Second}
	if guard != nil {
		client.CheckRedirect = guard.CheckRedirect
	}
	return &Webhook{url: url, headers: headers, client: client, guard: guard}
}

type webhookPayload struct {
	Level      string `json:"level"`
	Title      string `json:"title"`
	Component  string `json:"component"`
	Author     string `json:"author"`
	UnixMillis int64  `json:"unix_millis"`
	Detail     string `json:"detail"`
}

func (w *Webhook) Deliver(ctx context.Context, msg message.Message) error {
	if w.guard != nil {
		if err := w.guard.Check(w.url); err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
	}

	payload := webhookPayload{
		Level:      string(msg.Level),
		Title:      msg.Title,
		Component:  string(msg.Component),
		Author:     msg.Author,
		UnixMillis: msg.UnixMillis,
		Detail:     msg.Detail.Fallback(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: delivering: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook: returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
