// Package scoring reconciles the primary (VLM) and secondary (OCR) readings of
// a handwritten answer into one confidence per expected character and one
// score per exercise.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/evandrarf/tulis-be/internal/pkg/alignment"
	"github.com/evandrarf/tulis-be/internal/pkg/confusion"
)

const (
	primaryWeight   = 0.7
	secondaryWeight = 0.3
	// confusionCredit is the share of a fused confidence credited when the
	// fused letter is a known look-alike of the expected one.
	confusionCredit = 0.5
)

// Substitutions cost as much as a delete plus an insert, which makes the
// similarity 1 - indel/(len(a)+len(b)).
var ratioParams = levenshtein.NewParams().SubCost(2)

// Reading is one recognizer's transcription. A nil Confidences trusts every
// character fully.
type Reading struct {
	Text        string
	Confidences []float64
}

// Letter is the fused result for one expected position.
type Letter struct {
	Position   int
	Expected   string
	Submitted  string
	Confidence float64
}

// Result is the outcome of Fuse.
type Result struct {
	Letters         []Letter
	SubmittedText   string
	StructuralScore float64
	EditScore       float64
	Score           float64
}

// Fuse aligns both readings against expected and merges them position by
// position. The returned Letters always has one entry per rune of expected.
func Fuse(expected string, vlm, ocr Reading) Result {
	vAligned := alignment.Align(expected, vlm.Text, vlm.Confidences)
	oAligned := alignment.Align(expected, ocr.Text, ocr.Confidences)

	n := utf8.RuneCountInString(expected)
	res := Result{Letters: make([]Letter, 0, n)}

	var submitted strings.Builder
	var credit float64
	for i := 0; i < n; i++ {
		v, o := vAligned[i], oAligned[i]
		char, conf := fusePosition(v.Expected, v.Char, v.Confidence, o.Char, o.Confidence)

		credit += Credit(v.Expected, char, conf)
		submitted.WriteString(char)
		res.Letters = append(res.Letters, Letter{
			Position:   i,
			Expected:   v.Expected,
			Submitted:  char,
			Confidence: conf,
		})
	}

	if n > 0 {
		res.StructuralScore = credit / float64(n)
	}
	res.EditScore = max(Similarity(expected, vlm.Text), Similarity(expected, ocr.Text))
	res.Score = clamp((res.StructuralScore + res.EditScore) / 2)
	res.SubmittedText = submitted.String()
	return res
}

// fusePosition applies the reconciliation rules in priority order: both
// recognizers agree, the VLM is right, the OCR is right, the VLM said
// something, the OCR said something, nothing.
func fusePosition(expected, vc string, vs float64, oc string, os float64) (string, float64) {
	switch {
	case vc != "" && vc == oc:
		return vc, clamp(primaryWeight*vs + secondaryWeight*os)
	case vc == expected:
		return vc, primaryOnly(os)
	case oc == expected:
		return oc, clamp(secondaryWeight * os)
	case vc != "":
		return vc, primaryOnly(os)
	case oc != "":
		return oc, clamp(secondaryWeight * os)
	default:
		return "", 0
	}
}

func primaryOnly(os float64) float64 {
	if os == 0 {
		return primaryWeight
	}
	return clamp(1 - secondaryWeight*os)
}

// Credit is how much a fused letter contributes to the structural score.
func Credit(expected, submitted string, confidence float64) float64 {
	if submitted == "" {
		return 0
	}
	if submitted == expected {
		return confidence
	}
	e, _ := utf8.DecodeRuneInString(expected)
	s, _ := utf8.DecodeRuneInString(submitted)
	if confusion.Confusable(e, s) {
		return confusionCredit * confidence
	}
	return 0
}

// Similarity is the normalized edit similarity of two strings in [0,1]. An
// empty reading scores 0 regardless of the expected text.
func Similarity(expected, reading string) float64 {
	if reading == "" {
		return 0
	}
	return clamp(levenshtein.Similarity(expected, reading, ratioParams))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
