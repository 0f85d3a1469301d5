/*
Package config manages the TOML config for the dictionary manager.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Export ExportConfig `toml:"export"`
}

// PathsConfig holds the directories and files the tool operates on.
type PathsConfig struct {
	DataDir   string `toml:"data_dir"`
	OutputDir string `toml:"output_dir"`
	InboxDir  string `toml:"inbox_dir"`
	BatchFile string `toml:"batch_file"`
}

// ExportConfig holds Rime export options.
type ExportConfig struct {
	DefaultFilename string `toml:"default_filename"`
	BaseWeight      int    `toml:"base_weight"`
	WeightStep      int    `toml:"weight_step"`
}

// CharFile is the character table backing file (append-only log).
func (p PathsConfig) CharFile() string { return filepath.Join(p.DataDir, "danzi.txt") }

// WordFile is the word dictionary backing file.
func (p PathsConfig) WordFile() string { return filepath.Join(p.DataDir, "ciku.txt") }

// HeadFile is prepended verbatim to Rime exports.
func (p PathsConfig) HeadFile() string { return filepath.Join(p.DataDir, "head.txt") }

// StemFile supplies full codes for single-character export entries.
func (p PathsConfig) StemFile() string { return filepath.Join(p.DataDir, "stem.txt") }

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "output",
			InboxDir:  "update",
			BatchFile: "batch_add.txt",
		},
		Export: ExportConfig{
			DefaultFilename: "wubi98_ci.dict.yaml",
			BaseWeight:      1100000,
			WeightStep:      10,
		},
	}
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever sections still parse from a broken file.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if pathsSection, ok := utils.ExtractSection(tempConfig, "paths"); ok {
		extractPathsConfig(pathsSection, &config.Paths)
	}
	if exportSection, ok := utils.ExtractSection(tempConfig, "export"); ok {
		extractExportConfig(exportSection, &config.Export)
	}
	return config, nil
}

func extractPathsConfig(data map[string]any, paths *PathsConfig) {
	if val, ok := utils.ExtractString(data, "data_dir"); ok {
		paths.DataDir = val
	}
	if val, ok := utils.ExtractString(data, "output_dir"); ok {
		paths.OutputDir = val
	}
	if val, ok := utils.ExtractString(data, "inbox_dir"); ok {
		paths.InboxDir = val
	}
	if val, ok := utils.ExtractString(data, "batch_file"); ok {
		paths.BatchFile = val
	}
}

func extractExportConfig(data map[string]any, export *ExportConfig) {
	if val, ok := utils.ExtractString(data, "default_filename"); ok {
		export.DefaultFilename = val
	}
	if val, ok := utils.ExtractInt(data, "base_weight"); ok {
		export.BaseWeight = val
	}
	if val, ok := utils.ExtractInt(data, "weight_step"); ok {
		export.WeightStep = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
