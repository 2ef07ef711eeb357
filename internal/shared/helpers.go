// Package shared provides common utility functions used across multiple
// packages in the buildgate codebase.
package shared

import (
	"fmt"
	"strings"
)

// NormalizeComponentName lowercases and trims a component name so
// probe output and manifest declarations compare reliably.
func NormalizeComponentName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// FirstLine returns the first non-empty line of command output,
// trimmed. Probe commands print the detected version there.
func FirstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
