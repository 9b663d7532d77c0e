// Package cmd provides the CLI commands for nativize.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clojang/nativize/internal/domain"
	"github.com/clojang/nativize/internal/usecases"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// EnvironmentFactory creates the process environment provider.
	EnvironmentFactory func() domain.Environment

	// DescriptorsFactory creates the descriptor source for the given
	// environment.
	DescriptorsFactory func(environment domain.Environment) domain.DescriptorSource

	// ScannerFactory creates the source root scanner.
	ScannerFactory func() domain.UnitScanner

	// ScratchFactory creates the scratch directory preparer.
	ScratchFactory func() domain.ScratchPreparer

	// LocatorFactory creates the native-image binary locator.
	LocatorFactory func(environment domain.Environment) domain.BinaryLocator

	// RunnerFactory creates the subprocess runner streaming to out.
	RunnerFactory func(out domain.OutputWriter) domain.ProcessRunner

	// CompilerFactory creates the unit compiler factory handed to the
	// builder. The inner factory runs once the merged configuration and
	// scratch directory are known.
	CompilerFactory func(runner domain.ProcessRunner, environment domain.Environment) domain.UnitCompilerFactory

	// OutputWriterFactory creates the build output writer.
	OutputWriterFactory func() domain.OutputWriter

	// Stderr is the writer for diagnostics.
	Stderr io.Writer

	// Exit terminates the process with the given code. Overridable so
	// tests can capture the propagated compiler exit code.
	Exit func(code int)
}

// Command-line flags.
var (
	nativeImagePath string
	echoInvocation  bool
	precompileCsv   string
	verbose         bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for nativize.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nativize entry-unit [flags] -- [extra native-image args]",
		Short: "Build a native executable from a source-based project",
		Long: `nativize turns a source-based project into a single native executable by
orchestrating the GraalVM native-image compiler.

It merges the layered deps.toml descriptors (install, user, project),
AOT-compiles every discoverable unit into a scratch directory, and then
invokes native-image with the assembled class path and the entry unit's
class name. The compiler's output streams live and its exit code becomes
this process's exit code.

Everything after a literal -- is passed to native-image unmodified.

Examples:
  # Build the app.core entry point
  nativize app.core

  # Compile helper namespaces first
  nativize app.core --precompile app.db,app.http

  # Use an explicit binary and print the assembled invocation
  nativize app.core -n /opt/graalvm/bin/native-image --echo

  # Pass flags through to native-image
  nativize app.core -- --initialize-at-build-time -H:Name=app`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&nativeImagePath, "native-image-path", "n", "",
		"Override the native-image binary location")
	rootCmd.Flags().BoolVarP(&echoInvocation, "echo", "e", false,
		"Print the assembled native-image invocation before executing it")
	rootCmd.Flags().StringVarP(&precompileCsv, "precompile", "p", "",
		"Comma-separated namespaces to compile before the entry unit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runBuild executes one end-to-end build with injected dependencies.
func runBuild(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Split the positional arguments from the pass-through args after --.
	positional := args
	var extraArgs []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional = args[:dash]
		extraArgs = args[dash:]
	}

	if len(positional) == 0 {
		return domain.ErrMissingEntryUnit
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments after entry unit: %v", positional[1:])
	}
	entryUnit := positional[0]

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	log := deps.LoggerFactory()
	environment := deps.EnvironmentFactory()

	// Pre-flight: resolve the native-image binary before touching the
	// scratch directory or compiling anything.
	binPath := nativeImagePath
	if binPath == "" {
		located, err := deps.LocatorFactory(environment).Locate()
		if err != nil {
			log.Error(ctx, "could not resolve native-image binary", err, nil)
			return err
		}
		binPath = located
	}

	log.Info(ctx, "starting build", map[string]interface{}{
		"entry_unit": entryUnit,
		"binary":     binPath,
		"precompile": precompileCsv,
		"extra_args": extraArgs,
		"echo":       echoInvocation,
	})

	out := deps.OutputWriterFactory()
	runner := deps.RunnerFactory(out)

	builder := usecases.NewBuilder(usecases.BuilderParams{
		Descriptors: deps.DescriptorsFactory(environment),
		Scanner:     deps.ScannerFactory(),
		Scratch:     deps.ScratchFactory(),
		NewCompiler: deps.CompilerFactory(runner, environment),
		Runner:      runner,
		Env:         environment,
		Logger:      log,
		Progress:    out.Out(),
	})

	result, err := builder.Build(ctx, domain.BuildOptions{
		EntryUnit:       entryUnit,
		Precompile:      precompileCsv,
		NativeImagePath: binPath,
		ScratchDir:      domain.DefaultScratchDir,
		Echo:            echoInvocation,
		ExtraArgs:       extraArgs,
	})
	if err != nil {
		log.Error(ctx, "build failed", err, map[string]interface{}{
			"entry_unit": entryUnit,
		})
		if errors.Is(err, domain.ErrLaunchFailure) {
			writeWarningf(stderr, "could not launch %s; set %s or pass --native-image-path\n",
				binPath, domain.EnvGraalVMHome)
		}
		return err
	}

	// Propagate the compiler's exit code verbatim.
	exit := deps.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(result.ExitCode)
	return nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
