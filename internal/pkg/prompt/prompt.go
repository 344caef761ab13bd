// Package prompt builds the recognizer instruction for an exercise level and
// parses the numbered answer that comes back.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/evandrarf/tulis-be/internal/entity"
)

// ErrArityMismatch is returned when an answer does not contain the parts the
// task asked for. Callers treat it like a recognizer failure.
var ErrArityMismatch = errors.New("recognizer answer has unexpected number of parts")

// Verdict is the category-membership answer of a CATEGORY task.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictMember
	VerdictNotMember
)

var (
	markerRe     = regexp.MustCompile(`\d+\.\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const preamble = `A child submitted this image. Please follow the instructions exactly.
Do NOT explain your answers. ONLY output what is requested. Do not add arrows, symbols, or comments.
Number the parts clearly.
`

const feedbackPart = `Provide an analysis of the handwriting for the parent. Discuss:
- Letter formation
- Spacing and size
- Line quality
- Any other relevant features`

const wordsTranscription = `What did the child write exactly? Transcribe ALL the visible words or text the child wrote, in order, even if the words are misspelled or made-up. Do NOT correct them. Do NOT skip any. Do NOT explain.`

const lettersTranscription = `What is written in the image - transcribe the text *exactly* as it appears.
- The child only writes alphabetic characters (A-Z or a-z). There are no numbers, punctuation, or special symbols.
- This includes case changes *within words* (e.g., "hElLo" must be transcribed exactly like that).
- DO NOT normalize capitalization - this is critical.
- Ignore spaces between repeated letters (e.g., "A A A" -> "AAA").`

// Task is the instruction sent to a recognizer together with the rules used
// to read its answer.
type Task struct {
	Level       entity.ExerciseLevel
	Category    string
	Instruction string
}

// Answer is a parsed recognizer answer.
type Answer struct {
	Transcription string
	Feedback      string
	Verdict       Verdict
	// Corrected is the canonical word when Verdict is VerdictMember.
	Corrected string
}

// Build returns the task for level. category is only used at the category
// level.
func Build(level entity.ExerciseLevel, category string) Task {
	var parts []string
	switch level {
	case entity.LevelCategory:
		parts = []string{
			wordsTranscription,
			fmt.Sprintf(`Could it be a word from the category '%s' (possibly with typos)? Answer only "Yes" or "No".`, category),
			`If yes, what is the corrected word? Write ONLY the single corrected word. Do NOT show the original. Do NOT explain.`,
			feedbackPart,
		}
	case entity.LevelWords:
		parts = []string{wordsTranscription, feedbackPart}
	default:
		parts = []string{lettersTranscription, feedbackPart}
	}

	var b strings.Builder
	b.WriteString(preamble)
	for i, p := range parts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return Task{Level: level, Category: category, Instruction: b.String()}
}

// Parse reads a numbered answer. Part 1 is the transcription and the last part
// is the feedback; category tasks also read the verdict and corrected word.
func (t Task) Parse(raw string) (Answer, error) {
	parts := split(raw)
	if len(parts) < 2 {
		return Answer{}, fmt.Errorf("%w: got %d, want at least 2", ErrArityMismatch, len(parts))
	}

	ans := Answer{
		Transcription: cleanTranscription(parts[0], t.Level),
		Feedback:      parts[len(parts)-1],
	}
	if t.Level != entity.LevelCategory {
		return ans, nil
	}

	switch verdict(parts[1]) {
	case "yes":
		if len(parts) < 4 {
			return Answer{}, fmt.Errorf("%w: got %d, want 4 for a category match", ErrArityMismatch, len(parts))
		}
		fields := strings.Fields(parts[2])
		if len(fields) == 0 {
			return Answer{}, fmt.Errorf("%w: empty corrected word", ErrArityMismatch)
		}
		ans.Verdict = VerdictMember
		ans.Corrected = strings.Trim(fields[0], `"'.,;:!?`)
	case "no":
		if len(parts) < 3 {
			return Answer{}, fmt.Errorf("%w: got %d, want 3 for a category miss", ErrArityMismatch, len(parts))
		}
		ans.Verdict = VerdictNotMember
	default:
		return Answer{}, fmt.Errorf("%w: verdict %q is neither yes nor no", ErrArityMismatch, parts[1])
	}
	return ans, nil
}

// split drops whatever precedes the first marker and collapses whitespace in
// each part.
func split(raw string) []string {
	raw = norm.NFC.String(strings.TrimSpace(raw))
	pieces := markerRe.Split(raw, -1)
	if len(pieces) < 2 {
		return nil
	}
	out := make([]string, 0, len(pieces)-1)
	for _, p := range pieces[1:] {
		out = append(out, strings.TrimSpace(whitespaceRe.ReplaceAllString(p, " ")))
	}
	return out
}

func verdict(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, ".!")
}

func cleanTranscription(s string, level entity.ExerciseLevel) string {
	s = strings.Trim(s, `"'`)
	if level == entity.LevelLetters {
		s = strings.Join(strings.Fields(s), "")
	}
	return s
}
