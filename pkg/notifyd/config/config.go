package config

import (
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/frequency"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/output"
)

// NotifyDefinition is the "notification:" block of a job definition: how a
// JobResult should be turned into a notification, if at all.
type NotifyDefinition struct {
	Title           string        `yaml:"title"`
	Component       string        `yaml:"component"`
	OutputFormat    output.Format `yaml:"output_format"`
	ReportIfSuccess bool          `yaml:"report_if_success"`
}

// JobDefinition is one job's full configuration: what to run, how often,
// whether concurrent invocations are allowed, and how to notify on
// completion. Immutable after Load returns.
type JobDefinition struct {
	Cmd           string              `yaml:"cmd"`
	AllowParallel bool                `yaml:"allow_parallel"`
	Frequency     frequency.Frequency `yaml:"frequency"`
	Notify        NotifyDefinition    `yaml:"notification"`
}

// Config is the full job configuration: every job keyed by its validated id.
type Config struct {
	Jobs map[JobDefinitionId]JobDefinition `yaml:"jobs"`
}
