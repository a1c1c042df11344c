// Package secrets loads API credentials from files referenced in the
// configuration or environment.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a secret from path, trimming surrounding whitespace. The
// name is only used to give errors more context.
func LoadFile(name, path string) (string, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = "secret"
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%s file is not configured", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, path, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, path)
	}

	return secret, nil
}
