package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/keeper/internal/paths"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level"`
}

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize keeper configuration and data files",
		Long: `Create the configuration directory with a default config.yaml, then
write empty contact and task snapshots if none exist yet. Existing
configuration and records are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, s)
		},
	}
}

func runInit(cmd *cobra.Command, s *session) error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return fmt.Errorf("%w: resolve config dir: %w", errSystem, err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("%w: create config directory: %w", errSystem, err)
	}
	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, s.flags.dataDir); err != nil {
		return fmt.Errorf("%w: write config: %w", errSystem, err)
	}

	a, err := s.open(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.Config().DataDir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %w", errSystem, err)
	}
	// A snapshot that failed to load is kept on disk for the user to inspect
	// rather than overwritten with an empty list.
	if len(a.Warnings()) == 0 {
		if err := a.Contacts.Sync(); err != nil {
			return err
		}
		if err := a.Tasks.Sync(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", configPath)
	fmt.Fprintf(out, "data:   %s (%s backend)\n", a.Config().DataDir, a.Config().Backend)
	fmt.Fprintln(out, "keeper initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:  defaultBackend,
		DataDir:  dataDir,
		LogLevel: defaultLogLevel,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
