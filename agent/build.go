package agent

import (
	"context"
	"fmt"

	"github.com/abdusubhan/ask-agent/agent/tools/profile"

	"github.com/sirupsen/logrus"
)

// NewProvider builds the model provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg *AgentConfig) (Provider, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL), nil
	case ProviderGenai:
		return NewGenaiProvider(ctx, cfg.APIKey, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// NewFromConfig validates cfg and assembles the profile assistant: the
// persona, the eight knowledge tools and the model provider.
func NewFromConfig(ctx context.Context, cfg *AgentConfig, log *logrus.Entry) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return assemble(provider, cfg, log)
}

func assemble(provider Provider, cfg *AgentConfig, log *logrus.Entry) (*Agent, error) {
	a, err := NewAgent(provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.SystemPrompt != "" {
		a.SetSystemPrompt(cfg.SystemPrompt)
	}
	a.Temperature = cfg.Temperature
	a.MaxTurns = cfg.MaxTurns
	if err := a.SetToolWorkers(cfg.ToolWorkers); err != nil {
		a.Close()
		return nil, err
	}
	a.SetLogger(log)
	for _, tool := range profile.Tools() {
		a.RegisterTool(tool)
	}
	return a, nil
}
