// Package settings persists the gateway configuration between runs.
package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings mirrors gateway.Config in a serialisable shape. The API key is
// stored as supplied; protecting the settings file is the platform's job.
type Settings struct {
	Kind     string `yaml:"kind"`
	Provider string `yaml:"provider"`
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`

	ConsentInstitutional bool `yaml:"consent_institutional"`
	ConsentData          bool `yaml:"consent_data"`
}

func GetConfigDir() (string, error) {
	if dir := os.Getenv("ACCESSTWIN_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "accesstwin"), nil
}

func GetFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yml"), nil
}

func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Load reads the settings file. A missing file returns defaults (local
// Ollama), not an error.
func Load() (*Settings, error) {
	path, err := GetFilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is the out-of-the-box configuration: a local Ollama server.
func Default() *Settings {
	return &Settings{
		Kind:     "local",
		Provider: "ollama",
		Model:    "gemma3:4b",
		BaseURL:  "http://localhost:11434",
	}
}

func Save(s *Settings) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := GetFilePath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clear removes the settings file. A missing file is not an error.
func Clear() error {
	path, err := GetFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
