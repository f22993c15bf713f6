// Package output renders a captured ProgramOutput into a notification detail
// according to a job's configured output format.
package output

import (
	"fmt"
	"unicode/utf8"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

// TruncateBytes is the per-stream byte budget the Executor applies before a
// ProgramOutput is ever handed to Render.
const TruncateBytes = 500

// Format selects how a ProgramOutput is rendered into a MessageDetail.
type Format string

const (
	SimpleIfSuccess Format = "SimpleIfSuccess"
	StdoutIfSuccess Format = "StdoutIfSuccess"
	AlwaysDetailed  Format = "AlwaysDetailed"
	ListOutput      Format = "ListOutput"
)

// ProgramOutput is a captured subprocess result: decoded (lossy UTF-8)
// stdout and stderr plus an exit code. A missing exit code (the process was
// killed by a signal) is represented as -1.
type ProgramOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func New(stdout, stderr string, exitCode int) ProgramOutput {
	return ProgramOutput{Stdout: stdout, Stderr: stderr, ExitCode: exitCode}
}

// Success reports whether the program exited with status zero.
func (o ProgramOutput) Success() bool {
	return o.ExitCode == 0
}

// TrimmedTo returns a copy with stdout and stderr each independently
// truncated to n bytes via TrimTo.
func (o ProgramOutput) TrimmedTo(n int) ProgramOutput {
	return ProgramOutput{
		Stdout:   TrimTo(o.Stdout, n),
		Stderr:   TrimTo(o.Stderr, n),
		ExitCode: o.ExitCode,
	}
}

func (o ProgramOutput) String() string {
	return fmt.Sprintf("ProgramOutput { stdout: %q, stderr: %q, exit_code: %d }", o.Stdout, o.Stderr, o.ExitCode)
}

// TrimTo keeps at most the trailing n bytes of s, prefixed with "..." if
// anything was cut. The cut point is advanced forward to the next UTF-8 rune
// boundary so the kept suffix never starts mid-rune.
func TrimTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return "..." + s[start:]
}

// Render builds the notification detail for a ProgramOutput under the given
// format.
func Render(o ProgramOutput, format Format) message.MessageDetail {
	switch format {
	case SimpleIfSuccess:
		if o.Success() {
			return message.NewRaw("Program Succeeded")
		}
		return verbose(o)
	case StdoutIfSuccess:
		if o.Success() {
			return message.NewDetailBuilder(o.Stdout).
				Text("Program Succeeded").
				Section("Stdout", func(w *message.SectionWriter) {
					w.AppendStyled(o.Stdout, message.StyleMonospace)
				}).
				Build()
		}
		return verbose(o)
	case AlwaysDetailed:
		return verbose(o)
	case ListOutput:
		return renderListOutput(o)
	default:
		// Formats are not validated when the config is loaded, so an empty
		// or unknown format reaches here; fall back to the most informative
		// rendering rather than panic.
		return verbose(o)
	}
}

func verbose(o ProgramOutput) message.MessageDetail {
	status := "failed"
	if o.Success() {
		status = "successful"
	}
	topline := fmt.Sprintf("Program %s with exit code %d", status, o.ExitCode)
	return message.NewDetailBuilder(o.String()).
		Text(topline).
		Section("Stderr", func(w *message.SectionWriter) {
			w.AppendStyled(o.Stderr, message.StyleMonospace)
		}).
		Section("Stdout", func(w *message.SectionWriter) {
			w.AppendStyled(o.Stdout, message.StyleMonospace)
		}).
		Build()
}
