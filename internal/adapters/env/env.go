// Package env provides adapters over ambient process state: environment
// variables, the platform name, executable lookup, and native-image binary
// location. Abstracting these behind domain interfaces keeps the pipeline
// deterministic under test.
package env

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/clojang/nativize/internal/domain"
)

// OSEnvironment implements domain.Environment against the real process
// state.
type OSEnvironment struct{}

// NewOSEnvironment creates an Environment backed by the operating system.
func NewOSEnvironment() *OSEnvironment {
	return &OSEnvironment{}
}

// Getenv returns the value of the named environment variable.
func (e *OSEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// Platform identifies the running operating system.
func (e *OSEnvironment) Platform() string {
	return runtime.GOOS
}

// LookPath searches PATH for the named executable.
func (e *OSEnvironment) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// GraalVMLocator resolves the native-image binary from the GraalVM
// installation or the executable search path.
// This adapter implements the domain.BinaryLocator interface.
type GraalVMLocator struct {
	env domain.Environment
}

// NewGraalVMLocator creates a locator using the given environment.
func NewGraalVMLocator(environment domain.Environment) *GraalVMLocator {
	return &GraalVMLocator{env: environment}
}

// Locate returns the absolute path of the native-image binary. It tries
// $GRAALVM_HOME/bin first, then falls back to a plain PATH lookup. Returns
// an error wrapping domain.ErrBinaryNotFound if neither yields a binary.
func (l *GraalVMLocator) Locate() (string, error) {
	name := binaryName(l.env.Platform())

	if home := l.env.Getenv(domain.EnvGraalVMHome); home != "" {
		candidate := filepath.Join(home, "bin", name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	if path, err := l.env.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: set %s or pass --native-image-path", domain.ErrBinaryNotFound, domain.EnvGraalVMHome)
}

// binaryName is the platform-specific native-image executable name.
func binaryName(platform string) string {
	if platform == "windows" {
		return "native-image.cmd"
	}
	return "native-image"
}
