// Package output writes workflow step outputs for downstream steps.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// EnvFile names the environment variable holding the runner's output
// file path. When unset, outputs are printed to the given writer as
// plain key=value lines instead.
const EnvFile = "GITHUB_OUTPUT"

// Write emits the given outputs, either appended to the runner's output
// file or printed to w.
func Write(w io.Writer, outputs map[string]string) error {
	if path := os.Getenv(EnvFile); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()

		w = f
	}

	// Stable ordering keeps output deterministic for logs and tests.
	keys := make([]string, 0, len(outputs))
	for key := range outputs {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, outputs[key]); err != nil {
			return fmt.Errorf("failed to write output %s: %w", key, err)
		}
	}

	return nil
}
