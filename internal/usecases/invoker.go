package usecases

import (
	"strings"
)

// MungeUnitName converts a unit name to the class name native-image expects
// as an entry point: every hyphen becomes an underscore, matching the host
// environment's symbol-naming convention. Names without hyphens are
// returned unchanged.
func MungeUnitName(unit string) string {
	return strings.ReplaceAll(unit, "-", "_")
}

// NativeImageArgs assembles the native-image argument vector: extra
// arguments verbatim, then the search-path flag pair if searchPath is
// non-empty, then the entry class if non-empty, then --no-server on every
// platform but windows, where that flag is unsupported.
func NativeImageArgs(extraArgs []string, searchPath, entryClass, platform string) []string {
	args := make([]string, 0, len(extraArgs)+4)
	args = append(args, extraArgs...)

	if searchPath != "" {
		args = append(args, "-cp", searchPath)
	}
	if entryClass != "" {
		args = append(args, entryClass)
	}
	if platform != "windows" {
		args = append(args, "--no-server")
	}

	return args
}

// EchoLine renders the full invocation for --echo output. Arguments
// containing spaces are single-quoted so the line can be copied back into
// a shell.
func EchoLine(binPath string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binPath))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if strings.ContainsRune(arg, ' ') {
		return "'" + arg + "'"
	}
	return arg
}
