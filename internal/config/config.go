package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const configFile = ".intake/config.json"

// DefaultFormsDir is where `intake` looks for form definitions when the
// config does not name a directory.
const DefaultFormsDir = "forms"

// Config holds per-workspace settings persisted under .intake/.
type Config struct {
	FormsDir   string `json:"forms_dir,omitempty"`
	LastForm   string `json:"last_form,omitempty"`
	NoWrap     bool   `json:"no_wrap,omitempty"`
	MaxHistory int    `json:"max_history,omitempty"`
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// FormsPath resolves the directory holding form definitions, falling
// back to DefaultFormsDir when none is configured.
func FormsPath(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	dir := cfg.FormsDir
	if dir == "" {
		dir = DefaultFormsDir
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	return filepath.Join(baseDir, dir), nil
}

// SetLastForm remembers the most recently run form ID
func SetLastForm(baseDir string, formID string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.LastForm = formID
	return Save(baseDir, cfg)
}

// GetLastForm returns the most recently run form ID
func GetLastForm(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.LastForm, nil
}
