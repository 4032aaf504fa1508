// Package paths resolves the configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultConfigDirName is the CWD-relative configuration directory.
const DefaultConfigDirName = ".keeper"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "KEEPER_CONFIG_DIR"
	EnvDataDir   = "KEEPER_DATA_DIR"
)

// getwd is overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > KEEPER_CONFIG_DIR env > $(CWD)/.keeper.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > KEEPER_DATA_DIR env > $(CWD).
//
// The record files live directly in the working directory unless
// something overrides it.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return getwd()
}
