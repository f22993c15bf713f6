package output

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
)

// renderListOutput parses stdout as newline-delimited
// "component:success" / "component:failure[:reason]" records and builds a
// detail grouping failed and successful components. A line that doesn't
// parse aborts the whole rendering in favor of an "invalid format" detail
// naming the first bad line.
func renderListOutput(o ProgramOutput) message.MessageDetail {
	type failure struct {
		component, reason string
	}
	var successful []string
	var failed []failure

	scanner := bufio.NewScanner(strings.NewReader(o.Stdout))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 2 {
			return invalidListFormat(o, lineNum)
		}
		component, result := parts[0], parts[1]
		switch result {
		case "success":
			successful = append(successful, component)
		case "failure":
			reason := "No reason provided"
			if len(parts) == 3 {
				reason = parts[2]
			}
			failed = append(failed, failure{component: component, reason: reason})
		default:
			return invalidListFormat(o, lineNum)
		}
	}

	builder := message.NewDetailBuilder(o.Stdout)
	builder.Section("Failed components", func(w *message.SectionWriter) {
		if len(failed) == 0 {
			w.AppendPlain("None")
			return
		}
		for i, f := range failed {
			if i != 0 {
				w.AppendPlain("\n")
			}
			w.AppendPlain(fmt.Sprintf("- %s ", f.component))
			w.AppendStyled(f.reason, message.StyleMonospace)
		}
	})
	builder.Section("Successful components", func(w *message.SectionWriter) {
		if len(successful) == 0 {
			w.AppendPlain("None")
			return
		}
		for i, c := range successful {
			if i != 0 {
				w.AppendPlain("\n")
			}
			w.AppendPlain(fmt.Sprintf("- %s", c))
		}
	})
	if o.Stderr != "" {
		builder.Section("Stderr", func(w *message.SectionWriter) {
			w.AppendStyled(o.Stderr, message.StyleMonospace)
		})
	}
	return builder.Build()
}

func invalidListFormat(o ProgramOutput, badLine int) message.MessageDetail {
	raw := fmt.Sprintf("Output from program did not conform to output format. Encountered first issue on line %d", badLine)
	return message.NewDetailBuilder(raw).
		Section("Received stdout", func(w *message.SectionWriter) {
			w.AppendStyled(o.Stdout, message.StyleMonospace)
		}).
		Section("Stderr (Not parsed)", func(w *message.SectionWriter) {
			w.AppendStyled(o.Stderr, message.StyleMonospace)
		}).
		Build()
}
