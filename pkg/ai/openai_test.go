package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

func TestCompose_Success(t *testing.T) {
	// Mock chat completions server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected 2 messages got %d", len(payload.Messages))
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Dear client, thank you."}},
			},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	out, err := client.Compose(context.Background(), "You write emails.", "Write one.")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if out != "Dear client, thank you." {
		t.Fatalf("unexpected content %q", out)
	}
}

func TestCompose_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Compose(context.Background(), "sys", "prompt"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestExtractFacts_ReturnsRawContent(t *testing.T) {
	raw := `{"hard_facts":["5% allocation commitment"],"soft_facts":[]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Messages[0].Role != "system" {
			t.Fatalf("expected system message first, got %s", payload.Messages[0].Role)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": raw}},
			},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: ts.URL})

	out, err := client.ExtractFacts(context.Background(), "We committed to a 5% allocation.")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if out != raw {
		t.Fatalf("unexpected content %q", out)
	}
}
