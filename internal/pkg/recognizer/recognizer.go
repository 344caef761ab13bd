// Package recognizer reads handwriting out of an image. Vision-language models
// answer a free-text instruction; the OCR engine returns a transcription with
// per-character confidences.
package recognizer

import (
	"context"
	"encoding/base64"
	"strings"
	"unicode"
)

// Recognizer is implemented by every adapter.
type Recognizer interface {
	// Name identifies the adapter in logs and on the persisted exercise.
	Name() string

	// Transcribe reads img. instruction is ignored by adapters that cannot
	// follow instructions (OCR).
	Transcribe(ctx context.Context, img Image, instruction string) (Transcription, error)
}

// Image is an uploaded picture of the child's writing.
type Image struct {
	Data     []byte
	MIMEType string
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Transcription is what an adapter read. Confidences is nil when the adapter
// does not report them; otherwise it has one entry per rune of Text.
type Transcription struct {
	Source      string
	Text        string
	Confidences []float64
}

// Empty reports whether nothing was read.
func (t Transcription) Empty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// WithoutSpaces drops whitespace runes together with their confidences.
func (t Transcription) WithoutSpaces() Transcription {
	out := Transcription{Source: t.Source}
	var b strings.Builder
	i := 0
	for _, r := range t.Text {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
			if t.Confidences != nil {
				c := 0.0
				if i < len(t.Confidences) {
					c = t.Confidences[i]
				}
				out.Confidences = append(out.Confidences, c)
			}
		}
		i++
	}
	out.Text = b.String()
	if t.Confidences != nil && out.Confidences == nil {
		out.Confidences = []float64{}
	}
	return out
}

// Closer is implemented by adapters holding resources that need releasing.
type Closer interface {
	Close() error
}
