package recognizer

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/evandrarf/tulis-be/internal/entity"
	"github.com/evandrarf/tulis-be/internal/pkg/prompt"
)

const defaultTimeout = 20 * time.Second

// Set is the process-wide group of adapters used to read submissions. VLM is
// ordered by priority: the first entry is the primary, the rest are consulted
// only when everything before them failed.
type Set struct {
	VLM     []Recognizer
	OCR     Recognizer
	Timeout time.Duration
	Log     *logrus.Logger
}

// Reading is everything the adapters could tell about one image.
type Reading struct {
	// VLM is the raw answer of the VLM that answered, empty when none did.
	VLM Transcription
	// Answer is VLM parsed against the task.
	Answer prompt.Answer
	OCR    Transcription
}

// Read runs the VLM chain and the OCR engine concurrently. Failures are logged
// and leave the corresponding transcription empty; Read never fails.
func (s *Set) Read(ctx context.Context, img Image, task prompt.Task) Reading {
	var out Reading
	var g errgroup.Group

	g.Go(func() error {
		out.VLM, out.Answer = s.readVLM(ctx, img, task)
		return nil
	})
	g.Go(func() error {
		out.OCR = s.readOCR(ctx, img, task.Level)
		return nil
	})
	_ = g.Wait()

	return out
}

func (s *Set) readVLM(ctx context.Context, img Image, task prompt.Task) (Transcription, prompt.Answer) {
	for _, r := range s.VLM {
		t, err := s.call(ctx, r, img, task.Instruction)
		if err != nil {
			s.logger().WithError(err).WithField("recognizer", r.Name()).Warn("vlm failed to read submission")
			continue
		}
		ans, err := task.Parse(t.Text)
		if err != nil {
			s.logger().WithError(err).WithField("recognizer", r.Name()).Warn("vlm answer is unusable")
			continue
		}
		s.logger().WithField("recognizer", r.Name()).Debug("vlm answered")
		return t, ans
	}
	return Transcription{}, prompt.Answer{}
}

func (s *Set) readOCR(ctx context.Context, img Image, level entity.ExerciseLevel) Transcription {
	if s.OCR == nil {
		return Transcription{}
	}
	t, err := s.call(ctx, s.OCR, img, "")
	if err != nil {
		s.logger().WithError(err).WithField("recognizer", s.OCR.Name()).Warn("ocr failed to read submission")
		return Transcription{}
	}
	if level == entity.LevelLetters {
		t = t.WithoutSpaces()
	}
	return t
}

func (s *Set) call(ctx context.Context, r Recognizer, img Image, instruction string) (Transcription, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	t, err := r.Transcribe(ctx, img, instruction)
	if err != nil {
		return Transcription{}, err
	}
	if t.Empty() {
		return Transcription{}, permanent(r.Name(), errors.New("empty transcription"))
	}
	return t, nil
}

// Close releases every adapter that holds resources.
func (s *Set) Close() error {
	var errs []error
	for _, r := range append(append([]Recognizer{}, s.VLM...), s.OCR) {
		if c, ok := r.(Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

func (s *Set) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
