// Package proc provides the subprocess-running adapter.
// This package implements the domain.ProcessRunner interface using os/exec.
package proc

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/clojang/nativize/internal/domain"
)

// LineSink receives one line of merged subprocess output at a time, as it
// is produced.
type LineSink func(line string)

// Runner launches external programs with their error stream merged into
// their output stream, streaming each line to the configured sink while
// the child runs.
type Runner struct {
	sink LineSink
}

// NewRunner creates a Runner delivering output lines to sink.
func NewRunner(sink LineSink) *Runner {
	return &Runner{sink: sink}
}

// Run starts path with args, forwards merged stdout/stderr to the sink
// line-by-line, blocks until the child exits, and returns its exit code.
// Returns an error wrapping domain.ErrLaunchFailure if the child cannot be
// started at all.
func (r *Runner) Run(ctx context.Context, path string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	// One pipe carries both streams so lines interleave exactly as the
	// child produced them.
	pr, pw, err := os.Pipe()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrLaunchFailure, err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrLaunchFailure, path, err)
	}

	// The parent's copy of the write end must close or the read loop
	// below never sees EOF.
	pw.Close()

	// bufio.Reader instead of bufio.Scanner: compiler diagnostics can
	// exceed Scanner's token limit, and a bailed-out read loop would kill
	// the child with SIGPIPE and drop its output.
	reader := bufio.NewReader(pr)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			r.sink(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			break
		}
	}
	pr.Close()

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return normalizeExitCode(exitErr.ExitCode()), nil
		}
		return 0, fmt.Errorf("waiting for %s: %w", path, err)
	}

	return normalizeExitCode(cmd.ProcessState.ExitCode()), nil
}

// normalizeExitCode maps the -1 reported for a signal-killed child to a
// plain failure code, so the status propagated through os.Exit stays
// meaningful.
func normalizeExitCode(code int) int {
	if code < 0 {
		return 1
	}
	return code
}
