// Package config loads scriptbox settings from config.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/scriptbox/internal/paths"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. SCRIPTBOX_BACKEND or
// SCRIPTBOX_STATUS_URL.
const EnvPrefix = "SCRIPTBOX"

const (
	KeyBackend        = "backend"
	KeyDataDir        = "data_dir"
	KeyStatusURL      = "status.url"
	KeyStatusTimeout  = "status.timeout"
	KeyStatusAttempts = "status.attempts"
)

// Config is the contents of config.yaml.
type Config struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Status  Status `mapstructure:"status" yaml:"status"`
}

// Status configures the account status client. An empty URL disables it.
type Status struct {
	URL      string        `mapstructure:"url" yaml:"url"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Attempts uint          `mapstructure:"attempts" yaml:"attempts"`
}

// Default returns the configuration used when config.yaml is absent.
func Default() Config {
	return Config{
		Backend: types.BackendFile,
		Status: Status{
			Timeout:  5 * time.Second,
			Attempts: 3,
		},
	}
}

// Load reads config.yaml from configDir, applying defaults and environment
// overrides. A missing file is not an error.
func Load(configDir string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyStatusURL, def.Status.URL)
	v.SetDefault(KeyStatusTimeout, def.Status.Timeout)
	v.SetDefault(KeyStatusAttempts, def.Status.Attempts)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(configDir, paths.ConfigFileName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.StorageConfig("").Validate(); err != nil {
		return Config{}, fmt.Errorf("config backend %q: %w", cfg.Backend, err)
	}
	return cfg, nil
}

// StorageConfig returns the backend selection for dataDir.
func (c Config) StorageConfig(dataDir string) types.Config {
	return types.Config{Backend: c.Backend, DataDir: dataDir}
}

// WriteDefault writes cfg to config.yaml in configDir unless the file
// already exists. It reports whether a file was written.
func WriteDefault(configDir string, cfg Config) (string, bool, error) {
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return path, false, fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return path, false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, false, err
	}
	return path, true, nil
}
