// internal/config/config.go
//
// This package handles configuration and the .puri directory structure.
// Every directory the terminal runs from gets a .puri/ folder holding the
// project config and session logs. Scheduling state itself is never
// persisted; only the generation-service settings and optional seed
// overrides live on disk.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PuriDir is the name of the directory we create in each project.
	PuriDir = ".puri"

	defaultBaseURL   = "https://generativelanguage.googleapis.com"
	defaultModel     = "gemini-2.5-flash-preview-05-20"
	defaultAPIKeyEnv = "PURI_API_KEY"
)

const defaultProjectConfigYAML = `# puri project configuration
version: 1

# Generation service used for mission idea suggestions. The API key is
# read from the environment variable named by api_key_env, never stored
# in this file.
suggestion:
  base_url: https://generativelanguage.googleapis.com
  model: gemini-2.5-flash-preview-05-20
  api_key_env: PURI_API_KEY

# Optional seed overrides for the upcoming mission schedule. When empty,
# the built-in schedule is used.
# schedule:
#   - date: 2025-08-29
#     prize: 500000
#     content: "첫 미션 내용"
`

// SuggestionConfig points at the generateContent endpoint.
type SuggestionConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// SeedMission overrides one entry of the starting schedule.
type SeedMission struct {
	Date    string `yaml:"date"`
	Prize   int    `yaml:"prize"`
	Content string `yaml:"content"`
}

// ProjectConfig models .puri/config.yaml.
type ProjectConfig struct {
	Version    int              `yaml:"version"`
	Suggestion SuggestionConfig `yaml:"suggestion"`
	Schedule   []SeedMission    `yaml:"schedule,omitempty"`
}

// Config holds the runtime configuration for the terminal.
type Config struct {
	// ProjectDir is the directory the user ran `puri` from.
	ProjectDir string

	// PuriProjectDir is ProjectDir/.puri.
	PuriProjectDir string

	Project ProjectConfig
}

// InitPuriDir creates the .puri directory structure in the given project
// directory and drops a default config file when none exists. Called on
// startup before the TUI launches.
func InitPuriDir(projectDir string) error {
	puriDir := filepath.Join(projectDir, PuriDir)
	if err := os.MkdirAll(filepath.Join(puriDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(puriDir, "config.yaml"))
}

// NewConfig creates a Config populated from .puri/config.yaml, falling
// back to defaults when the file is missing.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:     projectDir,
		PuriProjectDir: filepath.Join(projectDir, PuriDir),
		Project:        defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.PuriProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.PuriProjectDir, "config.yaml")
}

// Suggestion returns the generation-service settings.
func (c *Config) Suggestion() SuggestionConfig {
	return c.Project.Suggestion
}

// APIKey resolves the generation-service key from the configured
// environment variable. Empty when unset; the suggestion flow treats a
// missing key as a generation failure, not a startup error.
func (c *Config) APIKey() string {
	return os.Getenv(c.Project.Suggestion.APIKeyEnv)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Suggestion: SuggestionConfig{
			BaseURL:   defaultBaseURL,
			Model:     defaultModel,
			APIKeyEnv: defaultAPIKeyEnv,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Suggestion.BaseURL) == "" {
		pc.Suggestion.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(pc.Suggestion.Model) == "" {
		pc.Suggestion.Model = defaultModel
	}
	if strings.TrimSpace(pc.Suggestion.APIKeyEnv) == "" {
		pc.Suggestion.APIKeyEnv = defaultAPIKeyEnv
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Suggestion.BaseURL = strings.TrimSuffix(strings.TrimSpace(pc.Suggestion.BaseURL), "/")
	pc.Suggestion.Model = strings.TrimSpace(pc.Suggestion.Model)
	pc.Suggestion.APIKeyEnv = strings.TrimSpace(pc.Suggestion.APIKeyEnv)
	for i := range pc.Schedule {
		pc.Schedule[i].Date = strings.TrimSpace(pc.Schedule[i].Date)
		pc.Schedule[i].Content = strings.TrimSpace(pc.Schedule[i].Content)
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for i, seed := range pc.Schedule {
		if seed.Date == "" {
			return fmt.Errorf("schedule[%d]: date is required", i)
		}
		if seed.Content == "" {
			return fmt.Errorf("schedule[%d]: content is required", i)
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
