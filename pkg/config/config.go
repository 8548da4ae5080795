/*
Package config manages TOML config for the space restorer tooling.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spaceserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Restore RestoreConfig `toml:"restore"`
	Model   ModelConfig   `toml:"model"`
}

// RestoreConfig has inference related options.
type RestoreConfig struct {
	MaxWordLen int     `toml:"max_word_len"`
	Lambda     float64 `toml:"lambda"`
	Window     int     `toml:"window"`
	CacheSize  int     `toml:"cache_size"`
	IgnoreCase bool    `toml:"ignore_case"`
}

// ModelConfig holds model storage options.
type ModelConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Restore: RestoreConfig{
			MaxWordLen: 20,
			Lambda:     10.0,
			Window:     80,
			CacheSize:  1_000_000,
			IgnoreCase: true,
		},
		Model: ModelConfig{
			Dir: "model/",
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml with
// fallback priority:
// 1. ~/.config/spaceserve/
// 2. Current executable dir
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, ".config", "spaceserve", "config.toml"), nil
	}
	log.Errorf("Failed to get home directory: %v", err)
	execDir, execErr := utils.GetExecutableDir()
	if execErr != nil {
		return "", execErr
	}
	return filepath.Join(execDir, "config.toml"), nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
