// Package wordsource picks the word a learner is asked to write at the words
// and category levels.
package wordsource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNoWord = errors.New("no word available for category")

// Source returns a word belonging to category.
type Source interface {
	Name() string
	Word(ctx context.Context, category string) (string, error)
}

// WordPicker is the slice of the word repository Catalog needs.
type WordPicker interface {
	FindRandomWord(db *gorm.DB, category string) (string, error)
}

// Catalog picks from the curated categorized_words table. DB may be nil, in
// which case the picker uses its own handle without the caller's context.
type Catalog struct {
	DB     *gorm.DB
	Picker WordPicker
}

func (c *Catalog) Name() string { return "catalog" }

func (c *Catalog) Word(ctx context.Context, category string) (string, error) {
	var db *gorm.DB
	if c.DB != nil {
		db = c.DB.WithContext(ctx)
	}
	w, err := c.Picker.FindRandomWord(db, category)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNoWord, category)
	}
	if err != nil {
		return "", fmt.Errorf("pick word: %w", err)
	}
	return w, nil
}

// Completer answers a text prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const wordPrompt = `Give one simple English word a young child learning to write would know, from the category '%s'.
Answer with the single lowercase word only, between 3 and 8 letters, no punctuation.`

const DefaultAITimeout = 10 * time.Second

// AI asks a language model for a word. Answers that are not a single short
// alphabetic word are rejected. Each request is bounded by Timeout
// (DefaultAITimeout when zero).
type AI struct {
	Completer Completer
	Timeout   time.Duration
}

func (a *AI) Name() string { return "ai" }

func (a *AI) Word(ctx context.Context, category string) (string, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := a.Completer.Complete(ctx, fmt.Sprintf(wordPrompt, category))
	if err != nil {
		return "", err
	}
	w := strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"'.`))
	if !plainWord(w) {
		return "", fmt.Errorf("%w: unusable answer %q", ErrNoWord, raw)
	}
	return w, nil
}

func plainWord(w string) bool {
	n := 0
	for _, r := range w {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n >= 2 && n <= 12
}

// Chain tries each source in order and returns the first word found.
type Chain struct {
	Sources []Source
	Log     *logrus.Logger
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Word(ctx context.Context, category string) (string, error) {
	var errs []error
	for _, s := range c.Sources {
		w, err := s.Word(ctx, category)
		if err == nil {
			return w, nil
		}
		if c.Log != nil {
			c.Log.WithError(err).WithField("source", s.Name()).Warn("word source failed, trying next")
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoWord, category)
	}
	return "", errors.Join(errs...)
}
