package notifier

import (
	"fmt"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
)

// New builds the Deliverer selected by cfg.Backend.
func New(cfg config.NotifierConfig) (Deliverer, error) {
	guard := NewSSRFGuard(SSRFGuardConfig{})
	switch cfg.Backend {
	case "discord":
		return NewDiscord(cfg.Discord.WebhookID, cfg.Discord.WebhookToken, guard)
	case "slack":
		return NewSlack(cfg.Slack.WebhookURL, guard), nil
	case "webhook":
		return NewWebhook(cfg.Webhook.URL, cfg.Webhook.Headers, guard), nil
	default:
		return nil, fmt.Errorf("notifier: unknown backend %q (want discord, slack, or webhook)", cfg.Backend)
	}
}
