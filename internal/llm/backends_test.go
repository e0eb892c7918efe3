package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIBackend_Generate(t *testing.T) {
	var gotAuth string
	var gotReq openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a summary"}}]}`)
	}))
	defer server.Close()

	b := NewOpenAIBackend("sk-test", server.URL, "gpt-4o-mini")
	text, err := b.Generate(context.Background(), "summarize this", 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if text != "a summary" {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Temperature != 0.7 || gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "summarize this" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenAIBackend_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit"}}`)
	}))
	defer server.Close()

	b := NewOpenAIBackend("sk-test", server.URL, "gpt-4o-mini")
	if _, err := b.Generate(context.Background(), "x", 0.7); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestOllamaBackend_WarmsOnceThenGenerates(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		requests = append(requests, req.Prompt)
		fmt.Fprintf(w, `{"response":%q,"done":true}`, "out:"+req.Prompt)
	}))
	defer server.Close()

	b := NewOllamaBackend(server.URL, "mistral")

	first, err := b.Generate(context.Background(), "one", 0.7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Generate(context.Background(), "two", 0.7)
	if err != nil {
		t.Fatal(err)
	}

	if first != "out:one" || second != "out:two" {
		t.Errorf("responses = %q, %q", first, second)
	}
	// One empty warm-up request, then one request per generation.
	if len(requests) != 3 || requests[0] != "" {
		t.Errorf("requests = %q, want empty warm-up first then two prompts", requests)
	}
}

func TestOllamaBackend_WarmFailureSticks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"model not found"}`)
	}))
	defer server.Close()

	b := NewOllamaBackend(server.URL, "missing-model")
	_, err := b.Generate(context.Background(), "x", 0.7)
	if err == nil || !strings.Contains(err.Error(), "model load failed") {
		t.Fatalf("err = %v, want model load failure", err)
	}
	// The failed load is memoized.
	if _, err2 := b.Generate(context.Background(), "x", 0.7); err2 == nil {
		t.Fatal("expected sticky warm failure")
	}
}

func TestAnthropicBackend_Generate(t *testing.T) {
	var gotKey, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		fmt.Fprint(w, `{"content":[{"type":"text","text":"claude says hi"}]}`)
	}))
	defer server.Close()

	b := NewAnthropicBackend("sk-ant-test", "claude-3-5-haiku-latest")
	b.apiURL = server.URL

	text, err := b.Generate(context.Background(), "hello", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if text != "claude says hi" {
		t.Errorf("text = %q", text)
	}
	if gotKey != "sk-ant-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion == "" {
		t.Error("missing anthropic-version header")
	}
}

func TestLocalServerBackend_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected auth header %q", auth)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"local output"}}]}`)
	}))
	defer server.Close()

	b := NewLocalServerBackend(server.URL, "mistral-7b-instruct")
	text, err := b.Generate(context.Background(), "prompt", 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if text != "local output" {
		t.Errorf("text = %q", text)
	}
}
