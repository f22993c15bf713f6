// Package notify turns a job's outcome into a notification Message,
// applying the per-job notify_definition policy (title, component, whether
// successes are worth reporting at all).
package notify

import (
	"time"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/config"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/jobresult"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

// CreateMessage builds the Message to deliver for a job's result, or nil if
// no notification is warranted (a successful run with report_if_success
// false).
func CreateMessage(jobID config.JobDefinitionId, def config.NotifyDefinition, result jobresult.JobResult) *message.Message {
	if result.Kind == jobresult.Ok && !def.ReportIfSuccess {
		return nil
	}

	var level message.Level
	switch result.Kind {
	case jobresult.Ok:
		level = message.LevelInfo
	case jobresult.Failed:
		level = message.LevelError
	case jobresult.Invalid:
		level = message.LevelSelfError
	}

	return &message.Message{
		Level:      level,
		Title:      def.Title,
		Detail:     result.Detail,
		Component:  message.Component(def.Component),
		Author:     "rnotifyd/" + jobID.String(),
		UnixMillis: time.Now().UnixMilli(),
	}
}
