// Package notifier delivers rendered notifications to an external service:
// Discord webhook, Slack incoming webhook, or a generic JSON webhook.
package notifier

import (
	"context"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

// Deliverer is the interface a finished job's Message is sent through. The
// scheduler calls it on a goroutine of its own, so a slow delivery never
// holds up the dispatch loop. Delivery failures are logged by the caller
// and never retried; they do not affect scheduling decisions.
type Deliverer interface {
	Deliver(ctx context.Context, msg message.Message) error
}
