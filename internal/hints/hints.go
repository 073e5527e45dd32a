// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/outreach/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/outreach) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/outreach") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingAPIKey returns a hint naming the environment variable an API
// command needs.
func ForMissingAPIKey(envVar string) string {
	return format("set " + envVar + " in the environment before running this command")
}

// ForMissingColumn returns hints for a spreadsheet missing an expected
// column. Header matching is trimmed and case-insensitive, so the usual
// culprit is a renamed export column.
func ForMissingColumn(column string, available []string) string {
	hint := fmt.Sprintf("expected a column named %q", column)
	if len(available) > 0 {
		hint += "; file has: " + strings.Join(available, ", ")
	}
	return format(hint)
}

// ForUnsupportedFormat returns a hint listing readable spreadsheet formats.
func ForUnsupportedFormat() string {
	return format("supported input formats: .xlsx, .xlsm, .csv")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAPIFailure returns a hint for campaign platform call failures.
func ForAPIFailure() string {
	return format("check the API key, network connection, and platform account status")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
