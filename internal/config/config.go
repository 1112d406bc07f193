// Package config loads aidispatch settings from the config directory,
// .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	ai "github.com/spetersoncode/aidispatch"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Settings are the user-editable values.
type Settings struct {
	OpenAIAPIKey    string `yaml:"openai_api_key,omitempty"`
	AnthropicAPIKey string `yaml:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string `yaml:"gemini_api_key,omitempty"`
	DefaultModel    string `yaml:"default_model,omitempty"`
	DefaultProvider string `yaml:"default_provider,omitempty"`
	DefaultFormat   string `yaml:"default_format,omitempty"`
	RepairJSON      bool   `yaml:"repair_json,omitempty"`
	MetricsFile     string `yaml:"metrics_file,omitempty"`
	VertexProject   string `yaml:"vertex_project,omitempty"`
	VertexLocation  string `yaml:"vertex_location,omitempty"`
}

// Keys lists the settings accepted by Get and Set.
var Keys = []string{
	"openai_api_key",
	"anthropic_api_key",
	"gemini_api_key",
	"default_model",
	"default_provider",
	"default_format",
	"repair_json",
	"metrics_file",
	"vertex_project",
	"vertex_location",
}

// ErrUnknownKey is returned for a key not in Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the effective configuration. Environment values override the
// file but are never written back by Save.
type Config struct {
	Settings

	dir  string
	file Settings
}

// Dir returns the config directory: $AIDISPATCH_HOME, or ~/.aidispatch.
func Dir() string {
	if dir := os.Getenv("AIDISPATCH_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aidispatch"
	}
	return filepath.Join(home, ".aidispatch")
}

// Load reads dir/config.yaml, loads .env files from the working directory
// and dir, then applies environment overrides. A missing file is not an
// error.
func Load(dir string) (*Config, error) {
	cfg := &Config{dir: dir}

	path := cfg.Path()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg.file); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	loadDotEnv(".env", filepath.Join(dir, ".env"))

	cfg.Settings = cfg.file
	applyEnvOverrides(&cfg.Settings)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads the .env files that exist. Variables already set in the
// environment are kept.
func loadDotEnv(paths ...string) {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil && !slices.Contains(existing, p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return
	}
	_ = godotenv.Load(existing...)
}

func applyEnvOverrides(s *Settings) {
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		s.OpenAIAPIKey = val
	}
	if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
		s.AnthropicAPIKey = val
	}
	if val := os.Getenv("GEMINI_API_KEY"); val != "" {
		s.GeminiAPIKey = val
	} else if val := os.Getenv("GOOGLE_API_KEY"); val != "" {
		s.GeminiAPIKey = val
	}
	if val := os.Getenv("AIDISPATCH_MODEL"); val != "" {
		s.DefaultModel = val
	}
	if val := os.Getenv("AIDISPATCH_PROVIDER"); val != "" {
		s.DefaultProvider = val
	}
	if val := os.Getenv("AIDISPATCH_FORMAT"); val != "" {
		s.DefaultFormat = val
	}
	if val := os.Getenv("VERTEX_PROJECT"); val != "" {
		s.VertexProject = val
	}
	if val := os.Getenv("VERTEX_LOCATION"); val != "" {
		s.VertexLocation = val
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	return c.Settings.validate()
}

func (s Settings) validate() error {
	if _, err := ai.ParseProvider(s.DefaultProvider); err != nil {
		return fmt.Errorf("default_provider: %w", err)
	}
	if _, err := ai.ParseFormat(s.DefaultFormat); err != nil {
		return fmt.Errorf("default_format: %w", err)
	}
	return nil
}

// Dir returns the directory the config was loaded from.
func (c *Config) Dir() string { return c.dir }

// Path returns the config file path.
func (c *Config) Path() string { return filepath.Join(c.dir, FileName) }

// HistoryPath returns the history store file.
func (c *Config) HistoryPath() string { return filepath.Join(c.dir, "history.json") }

// TemplatesPath returns the template store file.
func (c *Config) TemplatesPath() string { return filepath.Join(c.dir, "templates.json") }

// CostsPath returns the cost ledger file.
func (c *Config) CostsPath() string { return filepath.Join(c.dir, "costs.json") }

// Provider returns the parsed default provider.
func (c *Config) Provider() ai.Provider {
	p, _ := ai.ParseProvider(c.DefaultProvider)
	return p
}

// Format returns the parsed default format.
func (c *Config) Format() ai.Format {
	f, _ := ai.ParseFormat(c.DefaultFormat)
	return f
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (string, error) {
	return c.Settings.get(key)
}

// Set validates value and stores it in both the effective and the file
// settings. Call Save to persist it.
func (c *Config) Set(key, value string) error {
	next := c.file
	if err := next.set(key, value); err != nil {
		return err
	}
	if err := next.validate(); err != nil {
		return err
	}
	c.file = next
	return c.Settings.set(key, value)
}

// Save writes the file settings to Path.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(c.file)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := os.WriteFile(c.Path(), raw, 0o600); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func (s *Settings) get(key string) (string, error) {
	switch key {
	case "openai_api_key":
		return s.OpenAIAPIKey, nil
	case "anthropic_api_key":
		return s.AnthropicAPIKey, nil
	case "gemini_api_key":
		return s.GeminiAPIKey, nil
	case "default_model":
		return s.DefaultModel, nil
	case "default_provider":
		return s.DefaultProvider, nil
	case "default_format":
		return s.DefaultFormat, nil
	case "repair_json":
		return strconv.FormatBool(s.RepairJSON), nil
	case "metrics_file":
		return s.MetricsFile, nil
	case "vertex_project":
		return s.VertexProject, nil
	case "vertex_location":
		return s.VertexLocation, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

func (s *Settings) set(key, value string) error {
	switch key {
	case "openai_api_key":
		s.OpenAIAPIKey = value
	case "anthropic_api_key":
		s.AnthropicAPIKey = value
	case "gemini_api_key":
		s.GeminiAPIKey = value
	case "default_model":
		s.DefaultModel = value
	case "default_provider":
		s.DefaultProvider = strings.ToLower(value)
	case "default_format":
		s.DefaultFormat = strings.ToLower(value)
	case "repair_json":
		if value == "" {
			s.RepairJSON = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("repair_json: %w", err)
		}
		s.RepairJSON = b
	case "metrics_file":
		s.MetricsFile = value
	case "vertex_project":
		s.VertexProject = value
	case "vertex_location":
		s.VertexLocation = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// IsSecret reports whether key holds a credential.
func IsSecret(key string) bool {
	return strings.HasSuffix(key, "_api_key")
}

// Mask hides all but the last four characters of a secret.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
