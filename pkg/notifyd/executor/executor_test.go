package executor

import (
	"context"
	"testing"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/jobresult"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/output"
)

func TestExecuteSuccess(t *testing.T) {
	result := Execute(context.Background(), "echo hello", output.SimpleIfSuccess)
	if result.Kind != jobresult.Ok {
		t.Fatalf("got kind %v", result.Kind)
	}
	if result.Detail.Raw != "Program Succeeded" {
		t.Fatalf("got detail %+v", result.Detail)
	}
}

func TestExecuteFailureExitCode(t *testing.T) {
	result := Execute(context.Background(), "exit 3", output.AlwaysDetailed)
	if result.Kind != jobresult.Failed {
		t.Fatalf("got kind %v", result.Kind)
	}
	if result.Detail.Elements[0].Text != "Program failed with exit code 3" {
		t.Fatalf("got %+v", result.Detail.Elements)
	}
}
func TestExecuteCapturesStdoutAndStderr(t *testing.T) {
	result := Execute(context.Background(), "echo out; echo err 1>&2", output.AlwaysDetailed)
	if result.Kind != jobresult.Ok {
		t.Fatalf("got kind %v", result.Kind)
	}
	var stdoutSection, stderrSection string
	for _, el := range result.Detail.Elements {
		if el.Kind == message.ElementSection && el.Section.Title == "Stdout" {
			stdoutSection = el.Section.Spans[0].Text
		}
		if el.Kind == message.ElementSection && el.Section.Title == "Stderr" {
			stderrSection = el.Section.Spans[0].Text
		}
	}
	if stdoutSection != "out\n" {
		t.Fatalf("got stdout section %q", stdoutSection)
	}
	if stderrSection != "err\n" {
		t.Fatalf("got stderr section %q", stderrSection)
	}
}
