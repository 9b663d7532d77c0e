// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/clojang/nativize/internal/domain"
)

// Logger defines the logging interface required by the builder.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// BuilderParams holds the injected dependencies of a Builder.
type BuilderParams struct {
	// Descriptors merges the layered dependency descriptors.
	Descriptors domain.DescriptorSource

	// Scanner discovers compilation units under one source root.
	Scanner domain.UnitScanner

	// Scratch wipes and recreates the staging directory.
	Scratch domain.ScratchPreparer

	// NewCompiler constructs the unit compiler once the effective
	// configuration and scratch directory are known.
	NewCompiler domain.UnitCompilerFactory

	// Runner launches the native-image subprocess.
	Runner domain.ProcessRunner

	// Env provides environment and platform lookups.
	Env domain.Environment

	// Logger receives structured diagnostics.
	Logger Logger

	// Progress receives user-facing build progress lines (compile
	// announcements, the --echo invocation line). Interleaves with the
	// compiler subprocess output on stdout.
	Progress io.Writer
}

// Builder runs one end-to-end native-image build: descriptor merge, unit
// discovery, scratch preparation, per-unit AOT compilation, search-path
// assembly, and the native-image invocation itself.
//
// The pipeline is strictly sequential. Every failure is fatal to the
// current build; nothing is retried.
type Builder struct {
	descriptors domain.DescriptorSource
	scanner     domain.UnitScanner
	scratch     domain.ScratchPreparer
	newCompiler domain.UnitCompilerFactory
	runner      domain.ProcessRunner
	env         domain.Environment
	logger      Logger
	progress    io.Writer
}

// NewBuilder creates a Builder with the given dependencies.
// All dependencies are injected to support testing and SOLID principles.
func NewBuilder(p BuilderParams) *Builder {
	return &Builder{
		descriptors: p.Descriptors,
		scanner:     p.Scanner,
		scratch:     p.Scratch,
		newCompiler: p.NewCompiler,
		runner:      p.Runner,
		env:         p.Env,
		logger:      p.Logger,
		progress:    p.Progress,
	}
}

// Build executes the whole pipeline for opts and returns the exit code of
// the native-image subprocess. The caller terminates the process with that
// code on success; any returned error is fatal and maps to exit code 1.
func (b *Builder) Build(ctx context.Context, opts domain.BuildOptions) (*domain.BuildResult, error) {
	cfg, err := b.descriptors.Merge()
	if err != nil {
		return nil, fmt.Errorf("failed to merge dependency descriptors: %w", err)
	}

	b.logger.Debug(ctx, "merged dependency descriptors", map[string]interface{}{
		"source_roots": cfg.SourceRoots,
	})

	units, err := DiscoverUnits(opts.EntryUnit, opts.Precompile, cfg, b.scanner)
	if err != nil {
		return nil, err
	}

	b.logger.Info(ctx, "discovered compilation units", map[string]interface{}{
		"entry_unit": opts.EntryUnit,
		"units":      units,
		"count":      len(units),
	})

	scratchDir := opts.ScratchDir
	if scratchDir == "" {
		scratchDir = domain.DefaultScratchDir
	}

	if err := b.scratch.Prepare(scratchDir); err != nil {
		return nil, err
	}

	if err := b.compileAll(ctx, units, cfg, scratchDir); err != nil {
		return nil, err
	}

	searchPath := BuildSearchPath(scratchDir, b.env)

	code, err := b.invokeNativeImage(ctx, opts, searchPath)
	if err != nil {
		return nil, err
	}

	b.logger.Info(ctx, "native-image finished", map[string]interface{}{
		"exit_code": code,
	})

	return &domain.BuildResult{ExitCode: code}, nil
}

// compileAll compiles units in order into scratchDir, announcing each unit
// on the progress stream. The first failure aborts the remaining units.
func (b *Builder) compileAll(ctx context.Context, units []string, cfg *domain.EffectiveConfig, scratchDir string) error {
	compiler := b.newCompiler(cfg, scratchDir)

	for _, unit := range units {
		fmt.Fprintf(b.progress, "Compiling %s\n", unit)
		if err := compiler.Compile(ctx, unit); err != nil {
			b.logger.Error(ctx, "unit compilation failed", err, map[string]interface{}{
				"unit": unit,
			})
			return err
		}
	}

	return nil
}

// invokeNativeImage assembles the native-image argument vector and runs
// the binary, streaming its merged output through the runner.
func (b *Builder) invokeNativeImage(ctx context.Context, opts domain.BuildOptions, searchPath string) (int, error) {
	args := NativeImageArgs(opts.ExtraArgs, searchPath, MungeUnitName(opts.EntryUnit), b.env.Platform())

	if opts.Echo {
		fmt.Fprintln(b.progress, EchoLine(opts.NativeImagePath, args))
	}

	b.logger.Debug(ctx, "invoking native-image", map[string]interface{}{
		"binary": opts.NativeImagePath,
		"args":   args,
	})

	return b.runner.Run(ctx, opts.NativeImagePath, args)
}
