// Package scan discovers compilation units under source roots.
// This package implements the domain.UnitScanner interface by walking a
// source tree and reading the namespace declared in each source file.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Source file extensions that can declare a compilable unit.
var sourceExtensions = map[string]bool{
	".clj":  true,
	".cljc": true,
}

// nsDecl matches the namespace declaration at the top of a source file,
// tolerating reader metadata between the ns symbol and the name.
var nsDecl = regexp.MustCompile(`\(ns\s+(?:\^\S+\s+)*([A-Za-z*+!?_<>='-][A-Za-z0-9*+!?_<>='.-]*)`)

// Scanner walks source roots looking for unit declarations.
type Scanner struct{}

// NewScanner creates a source tree Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the units declared under root, in walk (lexical) order.
// A root that does not exist yields an empty result, not an error. Files
// without a parseable namespace declaration are skipped.
func (s *Scanner) Scan(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat source root: %w", err)
	}

	var units []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		unit, err := declaredUnit(path)
		if err != nil {
			return err
		}
		if unit != "" {
			units = append(units, unit)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source root: %w", err)
	}

	return units, nil
}

// declaredUnit extracts the namespace declared in the file at path, or the
// empty string if the file declares none.
func declaredUnit(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source file %s: %w", path, err)
	}

	match := nsDecl.FindSubmatch(data)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}
