package usecases

import (
	"os"
	"strings"

	"github.com/clojang/nativize/internal/domain"
)

// BuildSearchPath derives the class path handed to native-image: the
// inherited search path with this tool's own entries removed and the
// scratch directory prepended. Pure function of the environment and
// scratchDir; calling it twice with the same inputs yields the same result.
func BuildSearchPath(scratchDir string, env domain.Environment) string {
	sep := string(os.PathListSeparator)

	entries := []string{scratchDir}
	for _, entry := range strings.Split(env.Getenv(domain.EnvClassPath), sep) {
		if entry == "" {
			continue
		}
		if strings.Contains(entry, domain.ToolPathMarker) {
			continue
		}
		entries = append(entries, entry)
	}

	return strings.Join(entries, sep)
}
