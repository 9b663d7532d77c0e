package proc

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clojang/nativize/internal/domain"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based subprocess tests require a POSIX shell")
	}
	return "/bin/sh"
}

func TestRunner_Run_StreamsMergedOutput(t *testing.T) {
	sh := requireShell(t)

	var lines []string
	runner := NewRunner(func(line string) {
		lines = append(lines, line)
	})

	code, err := runner.Run(context.Background(), sh, []string{
		"-c", "echo out-line; echo err-line 1>&2; echo after",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, lines, "out-line")
	assert.Contains(t, lines, "err-line")
	assert.Contains(t, lines, "after")
}

func TestRunner_Run_ReturnsExitCode(t *testing.T) {
	sh := requireShell(t)

	runner := NewRunner(func(string) {})

	code, err := runner.Run(context.Background(), sh, []string{"-c", "exit 3"})

	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRunner_Run_OutputPrecedesNonZeroExit(t *testing.T) {
	sh := requireShell(t)

	var lines []string
	runner := NewRunner(func(line string) {
		lines = append(lines, line)
	})

	code, err := runner.Run(context.Background(), sh, []string{"-c", "echo failing; exit 7"})

	require.NoError(t, err)
	assert.Equal(t, 7, code)
	assert.Equal(t, []string{"failing"}, lines)
}

func TestRunner_Run_LinesBeyondScannerTokenLimit(t *testing.T) {
	sh := requireShell(t)

	var lines []string
	runner := NewRunner(func(line string) {
		lines = append(lines, line)
	})

	// A single output line well past bufio's default 64KB token limit
	// must stream through intact without starving the lines after it.
	long := strings.Repeat("x", 70000)
	code, err := runner.Run(context.Background(), sh, []string{
		"-c", "printf '%s\\n' " + long + "; echo after; exit 0",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, lines, 2)
	assert.Equal(t, long, lines[0])
	assert.Equal(t, "after", lines[1])
}

func TestRunner_Run_OutputWithoutTrailingNewline(t *testing.T) {
	sh := requireShell(t)

	var lines []string
	runner := NewRunner(func(line string) {
		lines = append(lines, line)
	})

	code, err := runner.Run(context.Background(), sh, []string{"-c", "printf 'no-newline'"})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"no-newline"}, lines)
}

func TestRunner_Run_SignalKilledChild(t *testing.T) {
	sh := requireShell(t)

	runner := NewRunner(func(string) {})

	code, err := runner.Run(context.Background(), sh, []string{"-c", "kill -9 $$"})

	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestRunner_Run_LaunchFailure(t *testing.T) {
	runner := NewRunner(func(string) {})
	missing := filepath.Join(t.TempDir(), "no-such-binary")

	_, err := runner.Run(context.Background(), missing, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLaunchFailure)
}
