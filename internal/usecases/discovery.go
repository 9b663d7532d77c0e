package usecases

import (
	"fmt"
	"strings"

	"github.com/clojang/nativize/internal/domain"
)

// DiscoverUnits computes the full, deduplicated, ordered list of units to
// compile: explicit precompile entries first, then the entry unit, then
// every unit discovered under the configuration's source roots that is not
// already listed. First occurrence wins; later duplicates are collapsed
// silently. A source root that does not exist is skipped.
func DiscoverUnits(
	entryUnit string,
	precompileCsv string,
	cfg *domain.EffectiveConfig,
	scanner domain.UnitScanner,
) ([]string, error) {
	ordered := newOrderedSet()

	for _, token := range strings.Split(precompileCsv, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		ordered.add(token)
	}

	ordered.add(entryUnit)

	for _, root := range cfg.SourceRoots {
		units, err := scanner.Scan(root)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source root %s: %w", root, err)
		}
		for _, unit := range units {
			ordered.add(unit)
		}
	}

	return ordered.slice(), nil
}

// orderedSet is an insertion-ordered string set. Discovery relies on it for
// dedup-preserving-first-occurrence semantics rather than on map iteration
// order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s *orderedSet) slice() []string {
	return s.items
}
