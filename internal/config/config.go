// Package config loads application settings from config.json with
// RECIPEHUB_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey string         `mapstructure:"gemini_api_key"`
	GeminiModel  string         `mapstructure:"gemini_model"`
	DatabaseURL  string         `mapstructure:"database_url"`
	Server       ServerConfig   `mapstructure:"server"`
	LocalLLM     LocalLLMConfig `mapstructure:"local_llm"`
	Log          LogConfig      `mapstructure:"log"`
	Images       ImagesConfig   `mapstructure:"images"`
	Chef         ChefConfig     `mapstructure:"chef"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LocalLLMConfig points at an OpenAI-compatible chat completions server.
type LocalLLMConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

// LogConfig selects log level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ImagesConfig says where uploaded recipe images are written.
type ImagesConfig struct {
	Dir string `mapstructure:"dir"`
}

// ChefConfig selects the backend for the chef concierge and moderation.
type ChefConfig struct {
	Provider string `mapstructure:"provider"`
}

// Chef providers.
const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// Load reads configuration from configPath, or config.json in the working
// directory when configPath is empty. A missing default file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RECIPEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("database_url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8081"})
	v.SetDefault("local_llm.url", "http://localhost:1234/v1/chat/completions")
	v.SetDefault("local_llm.model", "gemma-3-12b-it:2")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("images.dir", "images")
	v.SetDefault("chef.provider", ProviderGemini)
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database_url is required")
	}
	switch c.Chef.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("gemini_api_key is required when chef.provider is gemini")
		}
	case ProviderLocal:
	default:
		return fmt.Errorf("unknown chef.provider %q", c.Chef.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
