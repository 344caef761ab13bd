// Package stats summarises a learner's submitted exercises.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/evandrarf/tulis-be/internal/entity"
)

const (
	confusedMinCount   = 3
	confusedMinPercent = 65
)

type LetterScore struct {
	Letter   string  `json:"letter"`
	AvgScore float64 `json:"avg_score"`
}

type LevelScore struct {
	Level    entity.ExerciseLevel `json:"level"`
	AvgScore float64              `json:"avg_score"`
}

type DailyScore struct {
	Day           string  `json:"day"`
	AvgScore      float64 `json:"avg_score"`
	ExerciseCount int     `json:"exercise_count"`
}

type ConfusedLetter struct {
	Letter              string  `json:"letter"`
	ConfusedWith        string  `json:"confused_with"`
	Times               int     `json:"times"`
	ConfusionPercentage float64 `json:"confusion_percentage"`
}

// Report is the learner's progress overview. Average scores are whole
// percentages.
type Report struct {
	LetterScores         []LetterScore    `json:"letter_scores"`
	LevelScores          []LevelScore     `json:"level_scores"`
	DailyScores          []DailyScore     `json:"daily_scores"`
	OftenConfusedLetters []ConfusedLetter `json:"often_confused_letters"`
}

// Compute builds the report from every letter row and every exercise of one
// learner. Outstanding exercises are ignored. Letters of category misses count
// toward neither letter scores nor confusions.
func Compute(letters []entity.SubmittedLetter, exercises []entity.Exercise) Report {
	letters = withoutCategoryMisses(letters, exercises)
	return Report{
		LetterScores:         letterScores(letters),
		LevelScores:          levelScores(exercises),
		DailyScores:          dailyScores(exercises),
		OftenConfusedLetters: oftenConfused(letters),
	}
}

func withoutCategoryMisses(letters []entity.SubmittedLetter, exercises []entity.Exercise) []entity.SubmittedLetter {
	misses := map[string]struct{}{}
	for i := range exercises {
		if exercises[i].CategoryMiss() {
			misses[exercises[i].ID] = struct{}{}
		}
	}
	if len(misses) == 0 {
		return letters
	}

	out := make([]entity.SubmittedLetter, 0, len(letters))
	for _, l := range letters {
		if _, ok := misses[l.ExerciseID]; !ok {
			out = append(out, l)
		}
	}
	return out
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) percent() float64 {
	if m.count == 0 {
		return 0
	}
	return math.Round(m.sum / float64(m.count) * 100)
}

// letterScores credits a letter with its score only when it was read as
// expected.
func letterScores(letters []entity.SubmittedLetter) []LetterScore {
	byLetter := map[string]*mean{}
	for _, l := range letters {
		m, ok := byLetter[l.ExpectedLetter]
		if !ok {
			m = &mean{}
			byLetter[l.ExpectedLetter] = m
		}
		if l.SubmittedLetter == l.ExpectedLetter {
			m.add(l.Score)
		} else {
			m.add(0)
		}
	}

	out := make([]LetterScore, 0, len(byLetter))
	for letter, m := range byLetter {
		out = append(out, LetterScore{Letter: letter, AvgScore: m.percent()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}

func levelScores(exercises []entity.Exercise) []LevelScore {
	byLevel := map[entity.ExerciseLevel]*mean{}
	for _, e := range exercises {
		if e.Score == nil {
			continue
		}
		m, ok := byLevel[e.Level]
		if !ok {
			m = &mean{}
			byLevel[e.Level] = m
		}
		m.add(*e.Score)
	}

	out := make([]LevelScore, 0, len(byLevel))
	for _, level := range []entity.ExerciseLevel{entity.LevelLetters, entity.LevelWords, entity.LevelCategory} {
		if m, ok := byLevel[level]; ok {
			out = append(out, LevelScore{Level: level, AvgScore: m.percent()})
		}
	}
	return out
}

func dailyScores(exercises []entity.Exercise) []DailyScore {
	byDay := map[string]*mean{}
	for _, e := range exercises {
		if e.SubmittedAt == nil || e.Score == nil {
			continue
		}
		day := e.SubmittedAt.UTC().Format(time.DateOnly)
		m, ok := byDay[day]
		if !ok {
			m = &mean{}
			byDay[day] = m
		}
		m.add(*e.Score)
	}

	out := make([]DailyScore, 0, len(byDay))
	for day, m := range byDay {
		out = append(out, DailyScore{Day: day, AvgScore: m.percent(), ExerciseCount: m.count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// oftenConfused reports, per expected letter, the wrong reading seen most
// often when it dominates the letter's appearances.
func oftenConfused(letters []entity.SubmittedLetter) []ConfusedLetter {
	appearances := map[string]int{}
	confusions := map[string]map[string]int{}
	for _, l := range letters {
		appearances[l.ExpectedLetter]++
		if l.SubmittedLetter == "" || l.SubmittedLetter == l.ExpectedLetter {
			continue
		}
		if confusions[l.ExpectedLetter] == nil {
			confusions[l.ExpectedLetter] = map[string]int{}
		}
		confusions[l.ExpectedLetter][l.SubmittedLetter]++
	}

	out := []ConfusedLetter{}
	for expected, with := range confusions {
		var top string
		var times int
		for submitted, n := range with {
			if n > times || (n == times && submitted < top) {
				top, times = submitted, n
			}
		}

		percent := math.Round(float64(times) / float64(appearances[expected]) * 100)
		if percent >= confusedMinPercent && times >= confusedMinCount {
			out = append(out, ConfusedLetter{
				Letter:              expected,
				ConfusedWith:        top,
				Times:               times,
				ConfusionPercentage: percent,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}
