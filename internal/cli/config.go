package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"

	defaultBackend  = types.BackendJSON
	defaultLogLevel = "warn"
)

// Environment overrides for config keys. data_dir has its own precedence
// chain in package paths.
const (
	envBackend  = "KEEPER_BACKEND"
	envLogLevel = "KEEPER_LOG_LEVEL"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml or config directory is not an error: defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	_ = v.BindEnv(cfgKeyBackend, envBackend)
	_ = v.BindEnv(cfgKeyLogLevel, envLogLevel)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
