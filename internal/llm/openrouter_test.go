package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.5-flash",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.5-flash" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemini-2.5-flash")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("aliases are not mapped", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-mini"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-mini" {
			t.Errorf("model = %q, want pass-through", p.ModelID())
		}
	})
}

func TestOpenRouterProvider_CustomBaseURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "anthropic/claude-haiku-4.5",
			"choices": []map[string]any{{
				"message":       map[string]any{"role": "assistant", "content": `{"label":"Normal","rationale":"x"}`},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-haiku-4.5",
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		Prompt: "test",
		Schema: classifySchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(path, "/api/v1/chat/completions") {
		t.Errorf("request path = %q", path)
	}
	if resp.Model != "anthropic/claude-haiku-4.5" {
		t.Errorf("model = %q", resp.Model)
	}
}
