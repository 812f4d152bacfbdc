package synthesis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMockSynthesizer_EmptyContext(t *testing.T) {
	m := NewMockSynthesizer()
	answer, err := m.Synthesize(context.Background(), "what is this?", "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if answer != NotFoundAnswer {
		t.Errorf("answer: got %q, want not-found reply", answer)
	}
}

func TestMockSynthesizer_WithContext(t *testing.T) {
	m := NewMockSynthesizer()
	answer, err := m.Synthesize(context.Background(), "q", "Page:1\nThe sky is blue.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if answer == NotFoundAnswer {
		t.Error("non-empty context should not produce the not-found reply")
	}
	if !strings.Contains(answer, "The sky is blue.") {
		t.Errorf("answer should quote context, got %q", answer)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("who?", "Page:2\nsome text")
	for _, want := range []string{"CONTEXT:", "QUESTION:", "who?", "some text", NotFoundAnswer} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestOpenAISynthesizer_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages: got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "CONTEXT:") {
			t.Error("user message should carry the instruction template")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "42"}}},
		})
	}))
	defer srv.Close()

	s, err := NewOpenAISynthesizer(OpenAIConfig{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenAISynthesizer: %v", err)
	}
	answer, err := s.Synthesize(context.Background(), "meaning of life?", "Page:1\nIt is 42.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if answer != "42" {
		t.Errorf("answer: got %q", answer)
	}
}

func TestOpenAISynthesizer_NoChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	s, _ := NewOpenAISynthesizer(OpenAIConfig{BaseURL: srv.URL, APIKey: "k"})
	if _, err := s.Synthesize(context.Background(), "q", "c"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestNewOpenAISynthesizer_RequiresKey(t *testing.T) {
	if _, err := NewOpenAISynthesizer(OpenAIConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}
