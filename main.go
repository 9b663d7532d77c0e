// Package main is the entry point for the nativize CLI application.
// nativize builds a native executable from a source-based project by
// AOT-compiling its units into a scratch directory and orchestrating the
// GraalVM native-image compiler over the result.
package main

import (
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/clojang/nativize/cmd"
	"github.com/clojang/nativize/internal/adapters/compiler"
	"github.com/clojang/nativize/internal/adapters/env"
	logadapter "github.com/clojang/nativize/internal/adapters/logger"
	"github.com/clojang/nativize/internal/adapters/output"
	"github.com/clojang/nativize/internal/adapters/proc"
	"github.com/clojang/nativize/internal/adapters/scan"
	"github.com/clojang/nativize/internal/adapters/scratch"
	"github.com/clojang/nativize/internal/domain"
	"github.com/clojang/nativize/internal/infrastructure/config"
)

func main() {
	// Create a single shared logger instance for the application
	zapLog := logger.NewZapLoggerFromConfig()
	adapter := logadapter.NewZapAdapter(zapLog)

	cmd.SetDefaultDependencies(newDependencies(adapter))
	cmd.Execute()
}

// newDependencies wires the production adapters into the command layer.
func newDependencies(adapter *logadapter.ZapAdapter) *cmd.Dependencies {
	return &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		EnvironmentFactory: func() domain.Environment {
			return env.NewOSEnvironment()
		},

		DescriptorsFactory: func(environment domain.Environment) domain.DescriptorSource {
			return config.NewLoader(environment)
		},

		ScannerFactory: func() domain.UnitScanner {
			return scan.NewScanner()
		},

		ScratchFactory: func() domain.ScratchPreparer {
			return scratch.NewManager()
		},

		LocatorFactory: func(environment domain.Environment) domain.BinaryLocator {
			return env.NewGraalVMLocator(environment)
		},

		RunnerFactory: func(out domain.OutputWriter) domain.ProcessRunner {
			return proc.NewRunner(out.WriteLine)
		},

		CompilerFactory: func(runner domain.ProcessRunner, environment domain.Environment) domain.UnitCompilerFactory {
			return func(cfg *domain.EffectiveConfig, scratchDir string) domain.UnitCompiler {
				return compiler.NewAOTCompiler(runner, environment, cfg, scratchDir)
			}
		},

		OutputWriterFactory: func() domain.OutputWriter {
			return output.NewWriter()
		},

		Stderr: os.Stderr,
		Exit:   os.Exit,
	}
}
