// Package compiler provides the ahead-of-time unit compiler adapter.
// This package implements the domain.UnitCompiler interface by invoking the
// host JVM's compile facility as a subprocess, one unit at a time.
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clojang/nativize/internal/domain"
)

// compileClass is the host facility that AOT-compiles one named unit into
// the directory given by the compile-path property.
const compileClass = "clojure.lang.Compile"

// AOTCompiler compiles units into the scratch directory by running the
// JVM's compile entry point. The class path it hands the JVM is the
// scratch directory, the configured source roots, and the inherited
// search path, in that order.
type AOTCompiler struct {
	runner     domain.ProcessRunner
	env        domain.Environment
	scratchDir string
	roots      []string
}

// NewAOTCompiler creates a compiler writing artifacts into scratchDir,
// compiling sources found under cfg's source roots.
func NewAOTCompiler(
	runner domain.ProcessRunner,
	environment domain.Environment,
	cfg *domain.EffectiveConfig,
	scratchDir string,
) *AOTCompiler {
	return &AOTCompiler{
		runner:     runner,
		env:        environment,
		scratchDir: scratchDir,
		roots:      cfg.SourceRoots,
	}
}

// Compile AOT-compiles one unit. Any failure, including a non-zero exit
// from the JVM, is reported as *domain.CompileError.
func (c *AOTCompiler) Compile(ctx context.Context, unit string) error {
	javaPath, err := c.javaBinary()
	if err != nil {
		return &domain.CompileError{Unit: unit, Cause: err}
	}

	args := []string{
		"-cp", c.classPath(),
		"-Dclojure.compile.path=" + c.scratchDir,
		compileClass,
		unit,
	}

	code, err := c.runner.Run(ctx, javaPath, args)
	if err != nil {
		return &domain.CompileError{Unit: unit, Cause: err}
	}
	if code != 0 {
		return &domain.CompileError{Unit: unit, Cause: fmt.Errorf("compiler exited with code %d", code)}
	}

	return nil
}

// javaBinary resolves the JVM launcher, preferring the GraalVM
// installation so compiled artifacts match the native-image toolchain.
func (c *AOTCompiler) javaBinary() (string, error) {
	name := "java"
	if c.env.Platform() == "windows" {
		name = "java.exe"
	}

	if home := c.env.Getenv(domain.EnvGraalVMHome); home != "" {
		candidate := filepath.Join(home, "bin", name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := c.env.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("no java binary available: %w", err)
	}
	return path, nil
}

// classPath joins the scratch directory, source roots, and inherited
// search path entries with the platform list separator.
func (c *AOTCompiler) classPath() string {
	sep := string(os.PathListSeparator)

	entries := append([]string{c.scratchDir}, c.roots...)
	for _, entry := range strings.Split(c.env.Getenv(domain.EnvClassPath), sep) {
		if entry != "" {
			entries = append(entries, entry)
		}
	}

	return strings.Join(entries, sep)
}
