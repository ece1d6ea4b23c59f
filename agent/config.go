package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGenai  = "genai"

	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.0-flash"
	DefaultAddr    = ":8000"

	// APIKeyEnv is the environment variable holding the model credential.
	APIKeyEnv = "GEMINI_API_KEY"
)

var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set; define it in the environment, .env or agent.yaml")

type AgentConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	SystemPrompt   string        `mapstructure:"system_prompt"`
	Temperature    *float32      `mapstructure:"temperature"`
	MaxTurns       int           `mapstructure:"max_turns"`
	ToolWorkers    int           `mapstructure:"tool_workers"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Server         ServerConfig  `mapstructure:"server"`
	Log            LogConfig     `mapstructure:"log"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Provider:     ProviderOpenAI,
		BaseURL:      DefaultBaseURL,
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		MaxTurns:     DefaultMaxTurns,
		ToolWorkers:  DefaultToolWorkers,
		Server:       ServerConfig{Addr: DefaultAddr},
		Log:          LogConfig{Level: "info", Format: "json"},
	}
}

// LoadAgentConfig loads agent config from a directory containing agent.yaml.
// Environment variables prefixed with AGENT_ override file values, and
// GEMINI_API_KEY always supplies the credential.
func LoadAgentConfig(path string) (*AgentConfig, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("agent")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultAgentConfig()
	setDefaults(v, cfg)
	if err := v.BindEnv("api_key", APIKeyEnv, "AGENT_API_KEY"); err != nil {
		return nil, err
	}
	// temperature has no default, so it must be bound explicitly.
	if err := v.BindEnv("temperature"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debug("agent config not found, relying on env vars")
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg AgentConfig) {
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("model", cfg.Model)
	v.SetDefault("system_prompt", cfg.SystemPrompt)
	v.SetDefault("max_turns", cfg.MaxTurns)
	v.SetDefault("tool_workers", cfg.ToolWorkers)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
}

// Validate checks the invariants the process needs before serving.
func (c *AgentConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderGenai:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.ToolWorkers <= 0 {
		return fmt.Errorf("tool_workers must be positive, got %d", c.ToolWorkers)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
