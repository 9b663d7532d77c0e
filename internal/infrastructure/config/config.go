// Package config provides dependency descriptor loading for nativize.
// Descriptors are TOML files at three precedence layers (install, user,
// project) merged left-to-right so that project settings override
// user settings, which override install settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/clojang/nativize/internal/domain"
)

// KeySourceRoots lists the directories scanned for compilable sources.
const KeySourceRoots = "paths"

// defaults seed the merge before any descriptor layer loads. Matches the
// conventional single-root project layout.
var defaults = map[string]interface{}{
	KeySourceRoots: []string{"src"},
}

// Loader reads and merges the three descriptor layers.
// This type implements the domain.DescriptorSource interface.
type Loader struct {
	installPath string
	userPath    string
	projectPath string
}

// NewLoader creates a Loader using the conventional descriptor locations:
// $GRAALVM_HOME/etc (install), the XDG config directory (user), and the
// current working directory (project).
func NewLoader(environment domain.Environment) *Loader {
	installPath := ""
	if home := environment.Getenv(domain.EnvGraalVMHome); home != "" {
		installPath = filepath.Join(home, "etc", domain.DescriptorFileName)
	}

	return &Loader{
		installPath: installPath,
		userPath:    filepath.Join(xdg.ConfigHome, "nativize", domain.DescriptorFileName),
		projectPath: domain.DescriptorFileName,
	}
}

// NewLoaderWithPaths creates a Loader reading explicit descriptor paths.
// Empty paths are skipped. This constructor is useful for testing.
func NewLoaderWithPaths(installPath, userPath, projectPath string) *Loader {
	return &Loader{
		installPath: installPath,
		userPath:    userPath,
		projectPath: projectPath,
	}
}

// Merge reads the descriptor layers fresh and merges them left-to-right
// into one effective configuration. Later layers override earlier ones
// key-wise, with the merge semantics delegated to the descriptor format
// library. Returns domain.ErrConfigNotFound if no layer exists on disk.
func (l *Loader) Merge() (*domain.EffectiveConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load descriptor defaults: %w", err)
	}

	loaded := false
	for _, path := range []string{l.installPath, l.userPath, l.projectPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load descriptor %s: %w", path, err)
		}
		loaded = true
	}

	if !loaded {
		return nil, fmt.Errorf("%w: looked for %s at install, user, and project locations",
			domain.ErrConfigNotFound, domain.DescriptorFileName)
	}

	return &domain.EffectiveConfig{
		SourceRoots: k.Strings(KeySourceRoots),
	}, nil
}
