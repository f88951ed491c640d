// Package config provides the 'relnotes config' commands: show, init, keys
// and set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveDir turns the init path argument into an absolute directory.
// Empty means the working directory; a leading ~ is the home directory.
func resolveDir(raw string) (string, error) {
	if raw == "" {
		raw = "."
	}
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw[1:], "/"))
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", raw, err)
	}
	return abs, nil
}

// ensureDir creates dir when missing. An existing file at dir is an error.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
