package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openaiinfra "github.com/vportan/bacbot/internal/infrastructure/openai"
	"github.com/vportan/bacbot/internal/services/session"
)

func newTestService(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", server.URL+"/v1")

	svc, err := NewService(openaiinfra.NewService(), "gpt-4", timeout)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func completionJSON(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestComplete(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode completion request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("Expected system message first, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(completionJSON("  4\n")); err != nil {
			t.Errorf("Failed to encode response: %v", err)
		}
	}, 5*time.Second)

	answer, err := svc.Complete(context.Background(), []session.Turn{
		{Role: session.RoleSystem, Content: "tutor"},
		{Role: session.RoleUser, Content: "2+2?"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if answer != "4" {
		t.Errorf("Complete() = %q, want trimmed %q", answer, "4")
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	}, 5*time.Second)

	_, err := svc.Complete(context.Background(), []session.Turn{
		{Role: session.RoleUser, Content: "2+2?"},
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Complete() error = %v, want ErrUnavailable", err)
	}
}

func TestCompleteTimeout(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("late"))
	}, 20*time.Millisecond)

	_, err := svc.Complete(context.Background(), []session.Turn{
		{Role: session.RoleUser, Content: "2+2?"},
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Complete() error = %v, want ErrUnavailable on timeout", err)
	}
}

func TestNewServiceRequiresClient(t *testing.T) {
	if _, err := NewService(nil, "gpt-4", time.Second); err == nil {
		t.Error("NewService(nil) error = nil, want error")
	}
}
