package recognizer

import (
	"context"
	"sync"
)

// MockResponse is a canned answer for MockRecognizer.
type MockResponse struct {
	Text        string
	Confidences []float64
	Err         error
}

// MockRecognizer returns canned responses in FIFO order and records every
// instruction it receives. When the queue is empty it fails.
type MockRecognizer struct {
	name      string
	mu        sync.Mutex
	responses []MockResponse
	Calls     []string
}

func NewMockRecognizer(name string, responses ...MockResponse) *MockRecognizer {
	return &MockRecognizer{name: name, responses: responses}
}

func (m *MockRecognizer) Name() string { return m.name }

func (m *MockRecognizer) Transcribe(_ context.Context, _ Image, instruction string) (Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, instruction)
	if len(m.responses) == 0 {
		return Transcription{}, permanent(m.name, nil)
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return Transcription{}, resp.Err
	}
	return Transcription{Source: m.name, Text: resp.Text, Confidences: resp.Confidences}, nil
}

// CallCount returns the number of Transcribe calls made.
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
