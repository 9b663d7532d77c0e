// Package scratch manages the compilation staging directory.
// This package implements the domain.ScratchPreparer interface.
package scratch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clojang/nativize/internal/domain"
)

// Manager wipes and recreates the scratch directory between builds. The
// directory is owned exclusively by one build at a time; concurrent builds
// against the same path are unsupported.
type Manager struct{}

// NewManager creates a scratch directory Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Prepare deletes every entry under path deepest-first, then recreates
// path as an empty directory. A path that does not exist yet is simply
// created. Idempotent on an already-empty directory. Any delete or create
// failure wraps domain.ErrScratchPrepare and aborts the build.
func (m *Manager) Prepare(path string) error {
	entries, err := collectEntries(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrScratchPrepare, err)
	}

	// Children sort after their parents; deleting in reverse order never
	// hits a non-empty directory.
	sort.Slice(entries, func(i, j int) bool {
		return depth(entries[i]) > depth(entries[j])
	})

	for _, entry := range entries {
		if err := os.Remove(entry); err != nil {
			return fmt.Errorf("%w: deleting %s: %w", domain.ErrScratchPrepare, entry, err)
		}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrScratchPrepare, path, err)
	}

	return nil
}

// collectEntries lists everything under path recursively, excluding path
// itself. A missing path yields no entries.
func collectEntries(path string) ([]string, error) {
	var entries []string

	err := filepath.WalkDir(path, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if p == path {
			return nil
		}
		entries = append(entries, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func depth(path string) int {
	return strings.Count(path, string(os.PathSeparator))
}
