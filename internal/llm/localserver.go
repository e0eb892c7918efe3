package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LocalServerBackend calls a self-hosted OpenAI-compatible chat completions
// endpoint (LM Studio, llama.cpp server, vLLM). It is the last resort in the
// default fallback order.
type LocalServerBackend struct {
	url    string
	model  string
	client *http.Client
}

// NewLocalServerBackend creates a backend for a local chat completions URL.
func NewLocalServerBackend(url, model string) *LocalServerBackend {
	if url == "" {
		url = "http://localhost:1234/v1/chat/completions"
	}
	return &LocalServerBackend{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *LocalServerBackend) Name() string { return "local" }

// Generate sends a single-turn chat completion request in the OpenAI wire
// format, without authentication.
func (b *LocalServerBackend) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	payload, err := json.Marshal(openAIRequest{
		Model:       b.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("local LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read local LLM response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local LLM returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse local LLM response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("local LLM returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
