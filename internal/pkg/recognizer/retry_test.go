package recognizer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestWithRetry_SucceedsAfterTransient(t *testing.T) {
	mock := NewMockRecognizer("vlm",
		MockResponse{Err: transient("vlm", errors.New("503"))},
		MockResponse{Text: "1. cat\n2. ok"},
	)
	r := WithRetry(mock, retryConfig())

	got, err := r.Transcribe(context.Background(), testImage, "read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "1. cat\n2. ok" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestWithRetry_PermanentNotRetried(t *testing.T) {
	mock := NewMockRecognizer("vlm",
		MockResponse{Err: permanent("vlm", errors.New("400"))},
		MockResponse{Text: "never"},
	)
	r := WithRetry(mock, retryConfig())

	_, err := r.Transcribe(context.Background(), testImage, "read")
	if !errors.Is(err, ErrRecognizerUnavailable) {
		t.Fatalf("expected ErrRecognizerUnavailable, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	mock := NewMockRecognizer("vlm",
		MockResponse{Err: transient("vlm", errors.New("503"))},
		MockResponse{Err: transient("vlm", errors.New("503"))},
		MockResponse{Err: transient("vlm", errors.New("503"))},
		MockResponse{Text: "never"},
	)
	r := WithRetry(mock, retryConfig())

	if _, err := r.Transcribe(context.Background(), testImage, "read"); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	mock := NewMockRecognizer("vlm",
		MockResponse{Err: &UnavailableError{Source: "vlm", Transient: true, RetryAfter: time.Second}},
		MockResponse{Text: "never"},
	)
	r := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.Transcribe(ctx, testImage, "read")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestWithRetry_SingleAttemptIsPassthrough(t *testing.T) {
	mock := NewMockRecognizer("vlm")
	if r := WithRetry(mock, RetryConfig{MaxAttempts: 1}); r != Recognizer(mock) {
		t.Fatal("expected the adapter to be returned unchanged")
	}
}
