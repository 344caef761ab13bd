package recognizer

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandrarf/tulis-be/internal/entity"
	"github.com/evandrarf/tulis-be/internal/pkg/prompt"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSet_PrimaryAnswers(t *testing.T) {
	primary := NewMockRecognizer("primary", MockResponse{Text: "1. c a t\n2. Good."})
	fallback := NewMockRecognizer("fallback", MockResponse{Text: "1. dog\n2. Bad."})
	ocr := NewMockRecognizer("ocr", MockResponse{Text: "c a t", Confidences: []float64{0.9, 0, 0.8, 0, 0.7}})
	set := &Set{VLM: []Recognizer{primary, fallback}, OCR: ocr, Log: quietLogger()}

	task := prompt.Build(entity.LevelLetters, "")
	got := set.Read(context.Background(), testImage, task)

	assert.Equal(t, "primary", got.VLM.Source)
	assert.Equal(t, "cat", got.Answer.Transcription)
	assert.Equal(t, "Good.", got.Answer.Feedback)
	assert.Equal(t, "cat", got.OCR.Text)
	assert.Equal(t, []float64{0.9, 0.8, 0.7}, got.OCR.Confidences)
	assert.Equal(t, 0, fallback.CallCount())
	assert.Equal(t, 1, ocr.CallCount())
	require.Len(t, primary.Calls, 1)
	assert.Equal(t, task.Instruction, primary.Calls[0])
}

func TestSet_FallbackOnFailure(t *testing.T) {
	primary := NewMockRecognizer("primary", MockResponse{Err: transient("primary", errors.New("down"))})
	fallback := NewMockRecognizer("fallback", MockResponse{Text: "1. dog\n2. Fine."})
	ocr := NewMockRecognizer("ocr", MockResponse{Text: "dog", Confidences: []float64{1, 1, 1}})
	set := &Set{VLM: []Recognizer{primary, fallback}, OCR: ocr, Log: quietLogger()}

	got := set.Read(context.Background(), testImage, prompt.Build(entity.LevelWords, ""))

	assert.Equal(t, "fallback", got.VLM.Source)
	assert.Equal(t, "dog", got.Answer.Transcription)
	assert.Equal(t, 1, primary.CallCount())
	assert.Equal(t, 1, fallback.CallCount())
}

func TestSet_FallbackOnUnusableAnswer(t *testing.T) {
	primary := NewMockRecognizer("primary", MockResponse{Text: "I see a dog"})
	fallback := NewMockRecognizer("fallback", MockResponse{Text: "1. dog\n2. no\n3. Fine."})
	set := &Set{VLM: []Recognizer{primary, fallback}, Log: quietLogger()}

	got := set.Read(context.Background(), testImage, prompt.Build(entity.LevelCategory, "animal"))

	assert.Equal(t, "fallback", got.VLM.Source)
	assert.Equal(t, prompt.VerdictNotMember, got.Answer.Verdict)
	assert.True(t, got.OCR.Empty())
}

func TestSet_AllFail(t *testing.T) {
	primary := NewMockRecognizer("primary", MockResponse{Err: permanent("primary", errors.New("401"))})
	ocr := NewMockRecognizer("ocr", MockResponse{Text: "   "})
	set := &Set{VLM: []Recognizer{primary}, OCR: ocr, Log: quietLogger()}

	got := set.Read(context.Background(), testImage, prompt.Build(entity.LevelWords, ""))

	assert.True(t, got.VLM.Empty())
	assert.Empty(t, got.Answer.Transcription)
	assert.True(t, got.OCR.Empty())
	assert.Equal(t, 1, ocr.CallCount())
}

type closingRecognizer struct {
	*MockRecognizer
	closed bool
	err    error
}

func (c *closingRecognizer) Close() error {
	c.closed = true
	return c.err
}

func TestSet_Close(t *testing.T) {
	a := &closingRecognizer{MockRecognizer: NewMockRecognizer("a")}
	b := &closingRecognizer{MockRecognizer: NewMockRecognizer("b"), err: errors.New("boom")}
	set := &Set{VLM: []Recognizer{a, NewMockRecognizer("plain")}, OCR: b}

	err := set.Close()

	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.EqualError(t, err, "boom")
}
