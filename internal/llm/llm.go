// Package llm provides the text-generation backends and the fallback chain
// used for newsletter summarization.
package llm

import (
	"context"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/logger"
)

// Backend generates text from a prompt at a temperature. Implementations
// differ only in transport and hyperparameters; the contract is identical for
// cloud APIs and local inference.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Chain tries backends in a fixed preference order and returns the first
// non-empty response. Backend errors are logged and swallowed, never
// propagated: a fully failed chain is reported as no-result and the caller
// decides what a missing generation means.
type Chain struct {
	backends []Backend
	lastUsed string
}

// NewChain builds a chain from the explicit backend list, tried in order.
func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// NewChainFromConfig assembles the chain from configuration. The preferred
// backend goes first; the remaining configured backends follow in the static
// order ollama, bedrock, openai, anthropic, local.
func NewChainFromConfig(cfg *config.LLM) *Chain {
	available := map[string]Backend{}
	var order []string

	if cfg.Ollama.Enabled {
		available["ollama"] = NewOllamaBackend(cfg.Ollama.BaseURL, cfg.Ollama.Model)
		order = append(order, "ollama")
	}
	if cfg.Bedrock.Enabled {
		available["bedrock"] = NewBedrockBackend(cfg.Bedrock.Region, cfg.Bedrock.ModelID)
		order = append(order, "bedrock")
	}
	if cfg.OpenAI.APIKey != "" {
		available["openai"] = NewOpenAIBackend(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		order = append(order, "openai")
	}
	if cfg.Anthropic.APIKey != "" {
		available["anthropic"] = NewAnthropicBackend(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		order = append(order, "anthropic")
	}
	if cfg.Local.Enabled {
		available["local"] = NewLocalServerBackend(cfg.Local.URL, cfg.Local.Model)
		order = append(order, "local")
	}

	var backends []Backend
	if preferred, ok := available[cfg.Preferred]; ok {
		backends = append(backends, preferred)
	}
	for _, name := range order {
		if name == cfg.Preferred {
			continue
		}
		backends = append(backends, available[name])
	}
	return NewChain(backends...)
}

// Generate runs the prompt through the chain. The boolean is false when every
// backend failed or returned empty output.
func (c *Chain) Generate(ctx context.Context, prompt string, temperature float64) (string, bool) {
	for _, b := range c.backends {
		text, err := b.Generate(ctx, prompt, temperature)
		if err != nil {
			logger.Warn("⚠️ backend failed, falling through", "backend", b.Name(), "error", err.Error())
			continue
		}
		if text == "" {
			logger.Warn("⚠️ backend returned empty response, falling through", "backend", b.Name())
			continue
		}
		c.lastUsed = b.Name()
		return text, true
	}
	logger.Warn("❌ all LLM backends exhausted")
	return "", false
}

// LastUsed returns the name of the backend that produced the most recent
// successful generation, or empty if none has.
func (c *Chain) LastUsed() string {
	return c.lastUsed
}

// Len reports how many backends are configured.
func (c *Chain) Len() int {
	return len(c.backends)
}
