package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/nivcodes/ainews/internal/config"
)

// stubBackend is a scripted backend for chain tests.
type stubBackend struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &stubBackend{name: "first", text: "from first"}
	second := &stubBackend{name: "second", text: "from second"}
	chain := NewChain(first, second)

	text, ok := chain.Generate(context.Background(), "prompt", 0.7)
	if !ok {
		t.Fatal("expected success")
	}
	if text != "from first" {
		t.Errorf("text = %q, want %q", text, "from first")
	}
	if second.calls != 0 {
		t.Error("second backend should not have been tried")
	}
	if chain.LastUsed() != "first" {
		t.Errorf("LastUsed = %q, want %q", chain.LastUsed(), "first")
	}
}

func TestChain_FallsThroughOnError(t *testing.T) {
	broken := &stubBackend{name: "broken", err: errors.New("connection refused")}
	working := &stubBackend{name: "working", text: "recovered"}
	chain := NewChain(broken, working)

	text, ok := chain.Generate(context.Background(), "prompt", 0.7)
	if !ok || text != "recovered" {
		t.Fatalf("got (%q, %v), want (recovered, true)", text, ok)
	}
	if chain.LastUsed() != "working" {
		t.Errorf("LastUsed = %q, want %q", chain.LastUsed(), "working")
	}
}

func TestChain_EmptyResponseFallsThrough(t *testing.T) {
	silent := &stubBackend{name: "silent", text: ""}
	working := &stubBackend{name: "working", text: "ok"}
	chain := NewChain(silent, working)

	text, ok := chain.Generate(context.Background(), "prompt", 0.7)
	if !ok || text != "ok" {
		t.Fatalf("got (%q, %v), want (ok, true)", text, ok)
	}
}

func TestChain_AllFailReturnsFalse(t *testing.T) {
	chain := NewChain(
		&stubBackend{name: "a", err: errors.New("down")},
		&stubBackend{name: "b", text: ""},
	)

	text, ok := chain.Generate(context.Background(), "prompt", 0.7)
	if ok {
		t.Error("expected failure")
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
	if chain.LastUsed() != "" {
		t.Errorf("LastUsed = %q, want empty", chain.LastUsed())
	}
}

func TestChain_EmptyChainIsSafe(t *testing.T) {
	chain := NewChain()
	if chain.Len() != 0 {
		t.Fatalf("Len = %d, want 0", chain.Len())
	}
	if _, ok := chain.Generate(context.Background(), "prompt", 0.7); ok {
		t.Error("empty chain reported success")
	}
}

func TestNewChainFromConfig_PreferredGoesFirst(t *testing.T) {
	cfg := &config.LLM{Preferred: "openai"}
	cfg.Ollama.Enabled = true
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.Model = "mistral"
	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.Anthropic.APIKey = "sk-ant-test"
	cfg.Anthropic.Model = "claude-3-5-haiku-latest"

	chain := NewChainFromConfig(cfg)
	if chain.Len() != 3 {
		t.Fatalf("Len = %d, want 3", chain.Len())
	}
	names := backendNames(chain)
	want := []string{"openai", "ollama", "anthropic"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestNewChainFromConfig_UnknownPreferredIgnored(t *testing.T) {
	cfg := &config.LLM{Preferred: "bedrock"} // bedrock not enabled
	cfg.Ollama.Enabled = true
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.Model = "mistral"

	chain := NewChainFromConfig(cfg)
	if chain.Len() != 1 {
		t.Fatalf("Len = %d, want 1", chain.Len())
	}
	if names := backendNames(chain); names[0] != "ollama" {
		t.Errorf("order = %v, want [ollama]", names)
	}
}

func backendNames(c *Chain) []string {
	names := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		names = append(names, b.Name())
	}
	return names
}
