// Package jobresult holds the tri-valued outcome of a job execution.
package jobresult

import (
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/output"
)

// Kind discriminates the three possible outcomes of a job execution.
type Kind int

const (
	// Ok means the job ran and exited successfully.
	Ok Kind = iota
	// Failed means the job ran, but exited with a non-zero status.
	Failed
	// Invalid means the job's configuration was unusable: the subprocess
	// could not even be spawned or waited on.
	Invalid
)

// JobResult carries the outcome of a job execution plus the notification
// detail already rendered for it. Output is the raw captured program output
// that produced Detail; it is the zero value for Invalid results, since
// those mean the subprocess never ran to completion.
type JobResult struct {
	Kind   Kind
	Detail message.MessageDetail
	Output output.ProgramOutput
}

func NewOk(detail message.MessageDetail) JobResult {
	return JobResult{Kind: Ok, Detail: detail}
}

func NewFailed(detail message.MessageDetail) JobResult {
	return JobResult{Kind: Failed, Detail: detail}
}

func NewInvalid(detail message.MessageDetail) JobResult {
	return JobResult{Kind: Invalid, Detail: detail}
}

// Success reports whether the job ran and exited cleanly.
func (r JobResult) Success() bool {
	return r.Kind == Ok
}

func (r Kind) String() string {
	switch r {
	case Ok:
		return "ok"
	case Failed:
		return "failed"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}
