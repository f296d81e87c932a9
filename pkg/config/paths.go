package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the path to the giab config directory (~/.giab).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".giab"), nil
}

// DefaultPath returns ~/.giab/giab.yaml. The file is optional.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "giab.yaml"), nil
}

// ResolveBaseDir makes BaseDir absolute so node paths stay stable for the
// lifetime of the process.
func (c *Config) ResolveBaseDir() error {
	if c.BaseDir == "" {
		return nil
	}
	abs, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory %s: %w", c.BaseDir, err)
	}
	c.BaseDir = abs
	return nil
}
