// Package config loads uranus configuration from disk with viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LLMSettings is one named LLM profile.
type LLMSettings struct {
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	APIType     string  `mapstructure:"api_type"`
}

// SearchSettings configures the web search tool.
type SearchSettings struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

// Config holds all uranus configuration. It is constructed explicitly and
// passed by reference; there is no process-wide singleton.
type Config struct {
	LLM          map[string]LLMSettings `mapstructure:"llm"`
	Search       SearchSettings         `mapstructure:"search"`
	WorkspaceDir string                 `mapstructure:"workspace_dir"`
	LogDir       string                 `mapstructure:"log_dir"`
	MaxMessages  int                    `mapstructure:"max_messages"`
}

// DefaultConfig returns a configuration derived from the environment: a
// single "default" LLM profile keyed by OPENAI_API_KEY.
func DefaultConfig() *Config {
	return &Config{
		LLM: map[string]LLMSettings{
			"default": {
				Model:       "gpt-3.5-turbo",
				BaseURL:     "https://api.openai.com/v1",
				APIKey:      os.Getenv("OPENAI_API_KEY"),
				MaxTokens:   4096,
				Temperature: 0.7,
				APIType:     "openai",
			},
		},
		WorkspaceDir: defaultWorkspaceDir(),
		LogDir:       defaultLogDir(),
		MaxMessages:  100,
	}
}

// Load reads configuration from an explicit file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return read(v)
}

// Resolve finds and loads the configuration using the documented order:
// the URANUS_CONFIG environment variable, then config/config.toml, then
// config/config.example.toml. When none can be loaded the environment-
// derived default is returned.
func Resolve() *Config {
	if path := os.Getenv("URANUS_CONFIG"); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	for _, path := range []string{
		filepath.Join("config", "config.toml"),
		filepath.Join("config", "config.example.toml"),
	} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

func read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = defaultWorkspaceDir()
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir()
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 100
	}
	return cfg, nil
}

// Profile returns the named LLM profile, falling back to "default".
func (c *Config) Profile(name string) LLMSettings {
	if settings, ok := c.LLM[name]; ok {
		return settings
	}
	return c.LLM["default"]
}

func defaultWorkspaceDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "uranus_workspace"
	}
	return filepath.Join(home, "uranus_workspace")
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uranus"
	}
	return filepath.Join(home, ".uranus")
}
