package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clojang/nativize/internal/domain"
)

// fakeRunner implements domain.ProcessRunner for testing.
type fakeRunner struct {
	exitCode int
	err      error
	path     string
	args     []string
}

func (f *fakeRunner) Run(_ context.Context, path string, args []string) (int, error) {
	f.path = path
	f.args = args
	if f.err != nil {
		return 0, f.err
	}
	return f.exitCode, nil
}

// fakeEnvironment implements domain.Environment for testing.
type fakeEnvironment struct {
	vars     map[string]string
	platform string
	lookPath map[string]string
}

func (f *fakeEnvironment) Getenv(key string) string {
	return f.vars[key]
}

func (f *fakeEnvironment) Platform() string {
	if f.platform == "" {
		return "linux"
	}
	return f.platform
}

func (f *fakeEnvironment) LookPath(file string) (string, error) {
	if path, ok := f.lookPath[file]; ok {
		return path, nil
	}
	return "", os.ErrNotExist
}

func TestAOTCompiler_Compile(t *testing.T) {
	runner := &fakeRunner{}
	environment := &fakeEnvironment{
		vars:     map[string]string{},
		lookPath: map[string]string{"java": "/usr/bin/java"},
	}
	cfg := &domain.EffectiveConfig{SourceRoots: []string{"src"}}

	c := NewAOTCompiler(runner, environment, cfg, "target/classes")
	err := c.Compile(context.Background(), "app.core")

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/java", runner.path)

	// Argument order: class path, compile path property, entry class, unit.
	require.Len(t, runner.args, 5)
	assert.Equal(t, "-cp", runner.args[0])
	assert.Equal(t, "-Dclojure.compile.path=target/classes", runner.args[2])
	assert.Equal(t, "clojure.lang.Compile", runner.args[3])
	assert.Equal(t, "app.core", runner.args[4])

	// The scratch dir leads the class path, followed by the source roots.
	sep := string(os.PathListSeparator)
	assert.Equal(t, strings.Join([]string{"target/classes", "src"}, sep), runner.args[1])
}

func TestAOTCompiler_Compile_InheritsClassPath(t *testing.T) {
	sep := string(os.PathListSeparator)
	runner := &fakeRunner{}
	environment := &fakeEnvironment{
		vars: map[string]string{
			domain.EnvClassPath: strings.Join([]string{"/lib/a.jar", "/lib/b.jar"}, sep),
		},
		lookPath: map[string]string{"java": "/usr/bin/java"},
	}

	c := NewAOTCompiler(runner, environment, &domain.EffectiveConfig{SourceRoots: []string{"src"}}, "out")
	err := c.Compile(context.Background(), "app")

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{"out", "src", "/lib/a.jar", "/lib/b.jar"}, sep), runner.args[1])
}

func TestAOTCompiler_Compile_PrefersToolchainJava(t *testing.T) {
	home := t.TempDir()
	binDir := filepath.Join(home, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	javaPath := filepath.Join(binDir, "java")
	require.NoError(t, os.WriteFile(javaPath, []byte("#!/bin/sh\n"), 0o755))

	runner := &fakeRunner{}
	environment := &fakeEnvironment{
		vars:     map[string]string{domain.EnvGraalVMHome: home},
		lookPath: map[string]string{"java": "/usr/bin/java"},
	}

	c := NewAOTCompiler(runner, environment, &domain.EffectiveConfig{}, "out")
	err := c.Compile(context.Background(), "app")

	require.NoError(t, err)
	assert.Equal(t, javaPath, runner.path)
}

func TestAOTCompiler_Compile_NonZeroExit(t *testing.T) {
	runner := &fakeRunner{exitCode: 1}
	environment := &fakeEnvironment{
		vars:     map[string]string{},
		lookPath: map[string]string{"java": "/usr/bin/java"},
	}

	c := NewAOTCompiler(runner, environment, &domain.EffectiveConfig{}, "out")
	err := c.Compile(context.Background(), "app.broken")

	require.Error(t, err)
	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "app.broken", compileErr.Unit)
	assert.Contains(t, compileErr.Error(), "app.broken")
}

func TestAOTCompiler_Compile_RunnerError(t *testing.T) {
	runner := &fakeRunner{err: domain.ErrLaunchFailure}
	environment := &fakeEnvironment{
		vars:     map[string]string{},
		lookPath: map[string]string{"java": "/usr/bin/java"},
	}

	c := NewAOTCompiler(runner, environment, &domain.EffectiveConfig{}, "out")
	err := c.Compile(context.Background(), "app")

	require.Error(t, err)
	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.ErrorIs(t, err, domain.ErrLaunchFailure)
}

func TestAOTCompiler_Compile_NoJavaAvailable(t *testing.T) {
	runner := &fakeRunner{}
	environment := &fakeEnvironment{vars: map[string]string{}}

	c := NewAOTCompiler(runner, environment, &domain.EffectiveConfig{}, "out")
	err := c.Compile(context.Background(), "app")

	require.Error(t, err)
	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "app", compileErr.Unit)
}
