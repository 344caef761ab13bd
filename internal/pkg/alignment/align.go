// Package alignment pairs every character of an expected text with the
// character a recognizer produced for it.
package alignment

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Pair is the recognizer's view of one expected position. Char is empty when
// the recognizer produced nothing for that position.
type Pair struct {
	Expected   string
	Char       string
	Confidence float64
}

// Align computes an edit script between expected and recognized and returns
// exactly one Pair per rune of expected. conf holds one confidence per rune of
// recognized; a nil conf means every recognized rune is fully trusted.
// Runes that exist only in recognized are dropped. A replaced range longer on
// the expected side keeps reading recognized index-for-index until it runs out.
func Align(expected, recognized string, conf []float64) []Pair {
	e := split(expected)
	r := split(recognized)
	if conf == nil {
		conf = make([]float64, len(r))
		for i := range conf {
			conf[i] = 1.0
		}
	}

	out := make([]Pair, 0, len(e))
	matcher := difflib.NewMatcher(e, r)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e', 'r':
			for i := op.I1; i < op.I2; i++ {
				j := op.J1 + (i - op.I1)
				char := at(r, j)
				out = append(out, Pair{Expected: e[i], Char: char, Confidence: confAt(conf, j, char)})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Pair{Expected: e[i]})
			}
		}
	}
	return out
}

func split(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func confAt(conf []float64, i int, char string) float64 {
	if char == "" || i < 0 || i >= len(conf) {
		return 0
	}
	return conf[i]
}
