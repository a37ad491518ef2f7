package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DataConfig holds paths and limits for the persistence layer.
type DataConfig struct {
	// File is the primary JSON document the store reads and writes.
	File string `mapstructure:"file" yaml:"file"`

	// SnapshotDir is where dated backup copies of the document go.
	SnapshotDir string `mapstructure:"snapshot_dir" yaml:"snapshot_dir"`

	// DemoFile seeds the store when File does not exist yet.
	DemoFile string `mapstructure:"demo_file" yaml:"demo_file"`

	// MaxSnapshots bounds how many dated backups are retained.
	MaxSnapshots int `mapstructure:"max_snapshots" yaml:"max_snapshots"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light". "auto" follows the persisted
	// dark_mode metadata flag.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// NotifyConfig holds settings for the chapter-done webhook.
type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/novelforge/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "novelforge", "config.yaml")
}

// defaultDataDir returns the directory holding the document and snapshots.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "novelforge")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := defaultDataDir()
	return &AppConfig{
		Data: DataConfig{
			File:         filepath.Join(dataDir, "novel_forge_db.json"),
			SnapshotDir:  filepath.Join(dataDir, "snapshots"),
			DemoFile:     "demo_data.json",
			MaxSnapshots: 5,
		},
		Display: DisplayConfig{Theme: "auto"},
		Notify:  NotifyConfig{Enabled: false},
	}
}

// SaveConfig writes the configuration back to the given YAML file path,
// creating the parent directory if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data.file", cfg.Data.File)
	v.Set("data.snapshot_dir", cfg.Data.SnapshotDir)
	v.Set("data.demo_file", cfg.Data.DemoFile)
	v.Set("data.max_snapshots", cfg.Data.MaxSnapshots)
	v.Set("display.theme", cfg.Display.Theme)
	v.Set("notify.enabled", cfg.Notify.Enabled)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("data.file", defaults.Data.File)
	v.SetDefault("data.snapshot_dir", defaults.Data.SnapshotDir)
	v.SetDefault("data.demo_file", defaults.Data.DemoFile)
	v.SetDefault("data.max_snapshots", defaults.Data.MaxSnapshots)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("notify.enabled", defaults.Notify.Enabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Data.MaxSnapshots <= 0 {
		cfg.Data.MaxSnapshots = defaults.Data.MaxSnapshots
	}

	return cfg, nil
}
