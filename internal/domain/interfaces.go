// Package domain defines the core business entities and interfaces for nativize.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Domain errors for the build pipeline.
var (
	// ErrConfigNotFound indicates no dependency descriptor exists at any of
	// the install, user, or project locations.
	ErrConfigNotFound = errors.New("no dependency descriptor found")

	// ErrBinaryNotFound indicates no native-image binary could be resolved
	// by lookup or override.
	ErrBinaryNotFound = errors.New("native-image binary not found")

	// ErrMissingEntryUnit indicates no positional entry-unit argument was
	// supplied on the command line.
	ErrMissingEntryUnit = errors.New("entry unit argument is required")

	// ErrLaunchFailure indicates a subprocess could not be started at all
	// (missing, not executable, permission denied).
	ErrLaunchFailure = errors.New("failed to launch subprocess")

	// ErrScratchPrepare indicates the scratch directory could not be wiped
	// or recreated. Fatal to the build.
	ErrScratchPrepare = errors.New("failed to prepare scratch directory")
)

// CompileError reports that a single unit failed to compile. The remaining
// units of the build are never attempted after the first CompileError.
type CompileError struct {
	// Unit is the fully-qualified name of the unit that failed.
	Unit string

	// Cause is the underlying failure.
	Cause error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s: %v", e.Unit, e.Cause)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// DescriptorSource merges the layered dependency descriptors into one
// effective configuration. Reads happen fresh on every call; the result is
// immutable. Returns ErrConfigNotFound if no descriptor layer exists.
type DescriptorSource interface {
	Merge() (*EffectiveConfig, error)
}

// UnitScanner discovers compilation units under one source root. Unit names
// are returned in scan order. A root that does not exist yields an empty
// result, not an error.
type UnitScanner interface {
	Scan(root string) ([]string, error)
}

// UnitCompiler compiles a single named unit into the configured scratch
// directory. Implementations report failures as *CompileError.
type UnitCompiler interface {
	Compile(ctx context.Context, unit string) error
}

// UnitCompilerFactory constructs a UnitCompiler once the effective
// configuration and scratch directory are known, partway through the
// pipeline.
type UnitCompilerFactory func(cfg *EffectiveConfig, scratchDir string) UnitCompiler

// ScratchPreparer wipes and recreates the compilation staging directory.
type ScratchPreparer interface {
	// Prepare deletes everything under path, deepest-first, and recreates
	// path as an empty directory. Idempotent on an already-empty directory.
	// Failures wrap ErrScratchPrepare.
	Prepare(path string) error
}

// ProcessRunner launches an external program, streams its merged
// stdout/stderr line-by-line as it is produced, blocks until termination,
// and returns the exit code. An unlaunchable binary yields an error
// wrapping ErrLaunchFailure.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args []string) (int, error)
}

// Environment provides process-wide lookups. Abstracted so the pipeline
// can be tested deterministically without touching ambient process state.
type Environment interface {
	// Getenv returns the value of the named environment variable, or the
	// empty string if unset.
	Getenv(key string) string

	// Platform identifies the operating system ("linux", "darwin",
	// "windows", ...).
	Platform() string

	// LookPath searches the executable search path for the named program.
	LookPath(file string) (string, error)
}

// BinaryLocator resolves the absolute path of the native-image binary.
// Returns ErrBinaryNotFound if no binary is resolvable.
type BinaryLocator interface {
	Locate() (string, error)
}

// OutputWriter carries user-facing build output: progress lines and the
// streamed output of child processes, interleaved in production order.
type OutputWriter interface {
	// WriteLine writes one line of subprocess output as it arrives.
	WriteLine(line string)

	// Out exposes the underlying destination for components that write
	// progress lines directly.
	Out() io.Writer
}
