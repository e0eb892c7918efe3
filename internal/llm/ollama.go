package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// OllamaBackend generates text through a local Ollama server. The first call
// verifies that the configured model is loadable and that cost is paid once;
// subsequent calls reuse the warm server-side model. There is no eviction or
// reload.
type OllamaBackend struct {
	baseURL string
	model   string
	client  *http.Client

	warmOnce sync.Once
	warmErr  error
}

// NewOllamaBackend creates an Ollama backend.
func NewOllamaBackend(baseURL, model string) *OllamaBackend {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaBackend{
		baseURL: baseURL,
		model:   model,
		// Local generation on CPU can be slow; allow for model load time.
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (b *OllamaBackend) Name() string { return "ollama" }

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// warm loads the model once by issuing an empty-prompt request, which Ollama
// treats as a load-and-hold instruction.
func (b *OllamaBackend) warm(ctx context.Context) error {
	b.warmOnce.Do(func() {
		payload, err := json.Marshal(ollamaGenerateRequest{Model: b.model, Stream: false})
		if err != nil {
			b.warmErr = err
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(payload))
		if err != nil {
			b.warmErr = err
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := b.client.Do(req)
		if err != nil {
			b.warmErr = fmt.Errorf("ollama not reachable at %s: %w", b.baseURL, err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			b.warmErr = fmt.Errorf("ollama model load failed: status %d: %s", resp.StatusCode, string(body))
		}
	})
	return b.warmErr
}

// Generate runs a non-streaming completion against the loaded model.
func (b *OllamaBackend) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if err := b.warm(ctx); err != nil {
		return "", err
	}

	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  b.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse ollama response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama error: %s", parsed.Error)
	}
	return parsed.Response, nil
}
