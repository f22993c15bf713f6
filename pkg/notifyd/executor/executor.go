// Package executor runs a job's shell command and classifies the result.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/jobresult"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/message"
	"github.com/tyhdefu/rnotifyd/pkg/notifyd/output"
)

// Execute runs cmdString through the platform shell, captures stdout and
// stderr, truncates each independently to output.TruncateBytes, and
// classifies the outcome into a JobResult rendered per format.
func Execute(ctx context.Context, cmdString string, format output.Format) jobresult.JobResult {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", cmdString)
	} else {
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", cmdString)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = nil

	err := cmd.Run()
	if err != nil {
		if _, isExitErr := err.(*exec.ExitError); !isExitErr {
			detail := message.NewRaw(fmt.Sprintf("Failed to run command: '%s'\nError: %s", cmdString, err))
			return jobresult.NewInvalid(detail)
		}
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	po := output.New(
		strings.ToValidUTF8(stdout.String(), "�"),
		strings.ToValidUTF8(stderr.String(), "�"),
		exitCode,
	).TrimmedTo(output.TruncateBytes)

	detail := output.Render(po, format)
	var result jobresult.JobResult
	if po.Success() {
		result = jobresult.NewOk(detail)
	} else {
		result = jobresult.NewFailed(detail)
	}
	result.Output = po
	return result
}
