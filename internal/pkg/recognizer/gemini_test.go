package recognizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGeminiRecognizer(t *testing.T, handler http.HandlerFunc) *GeminiRecognizer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := NewGeminiRecognizer(context.Background(), GeminiConfig{
		APIKey:    "test-key",
		Model:     "gemini-2.0-flash",
		MaxTokens: 300,
		BaseURL:   server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func geminiResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGeminiRecognizer_SendsInlineImage(t *testing.T) {
	var path, body string
	r := newTestGeminiRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		path = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiResponse("1. cat\n2. Neat."))
	})

	got, err := r.Transcribe(context.Background(), testImage, "read it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "1. cat\n2. Neat." {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.Source != "gemini" {
		t.Fatalf("unexpected source: %q", got.Source)
	}
	if !strings.Contains(path, "gemini-2.0-flash:generateContent") {
		t.Fatalf("unexpected path: %s", path)
	}
	if !strings.Contains(body, `"inlineData"`) || !strings.Contains(body, testImage.Base64()) {
		t.Fatalf("request does not carry the image: %s", body)
	}
	if !strings.Contains(body, "image/png") {
		t.Fatalf("request does not carry the mime type: %s", body)
	}
	if !strings.Contains(body, "read it") {
		t.Fatalf("request does not carry the instruction: %s", body)
	}
}

func TestGeminiRecognizer_ServerErrorIsTransient(t *testing.T) {
	r := newTestGeminiRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    http.StatusServiceUnavailable,
				"message": "overloaded",
				"status":  "UNAVAILABLE",
			},
		})
	})

	_, err := r.Transcribe(context.Background(), testImage, "read it")
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if !ue.Transient {
		t.Fatalf("expected transient error, got %v", err)
	}
	if !errors.Is(err, ErrRecognizerUnavailable) {
		t.Fatalf("expected ErrRecognizerUnavailable, got %v", err)
	}
}

func TestGeminiRecognizer_EmptyCandidateIsPermanent(t *testing.T) {
	r := newTestGeminiRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiResponse("  "))
	})

	_, err := r.Transcribe(context.Background(), testImage, "read it")
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if ue.Transient {
		t.Fatalf("expected permanent error, got %v", err)
	}
}

func TestGeminiRecognizer_RequiresKey(t *testing.T) {
	if _, err := NewGeminiRecognizer(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
