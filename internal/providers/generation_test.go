package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if req["model"] == "" {
			t.Error("request missing model")
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": {"message": "upstream failure"}}`))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteReturnsTrimmedText(t *testing.T) {
	server := newCompletionServer(t, "  generated answer\n", http.StatusOK)
	client := NewGenerationClient(GenerationConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	got, err := client.Complete(context.Background(), "some prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "generated answer" {
		t.Errorf("Complete = %q, want %q", got, "generated answer")
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	client := NewGenerationClient(GenerationConfig{})

	if _, err := client.Complete(context.Background(), "prompt"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	server := newCompletionServer(t, "", http.StatusInternalServerError)
	client := NewGenerationClient(GenerationConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Error("expected error from upstream failure")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-2", "choices": []any{}})
	}))
	t.Cleanup(server.Close)

	client := NewGenerationClient(GenerationConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	if _, err := client.Complete(context.Background(), "prompt"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}
