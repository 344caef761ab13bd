// Package leveling decides when a learner moves between exercise levels.
package leveling

import "github.com/evandrarf/tulis-be/internal/entity"

const (
	DefaultWindow  = 10
	DefaultPromote = 0.7
	DefaultDemote  = 0.3
)

// Entry is one submitted exercise of the learner's recent history.
type Entry struct {
	Level entity.ExerciseLevel
	Score float64
}

// Decision is the outcome of Evaluate.
type Decision struct {
	From entity.ExerciseLevel
	To   entity.ExerciseLevel
	// Mean is the average score of the evaluated window; zero when the window
	// was incomplete.
	Mean      float64
	Evaluated bool
}

// Changed reports whether the learner moves to another level.
func (d Decision) Changed() bool {
	return d.From != d.To
}

// Controller holds the adaptation thresholds.
type Controller struct {
	Window  int
	Promote float64
	Demote  float64
}

// NewController returns a Controller with the default thresholds for every
// zero field.
func NewController(window int, promote, demote float64) Controller {
	c := Controller{Window: window, Promote: promote, Demote: demote}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Promote <= 0 {
		c.Promote = DefaultPromote
	}
	if c.Demote <= 0 {
		c.Demote = DefaultDemote
	}
	return c
}

// Evaluate looks at the learner's most recent exercises, newest first. Only
// the first Window entries are considered, and of those only the ones at the
// current level. The level changes only when all Window entries are at the
// current level.
func (c Controller) Evaluate(current entity.ExerciseLevel, recent []Entry) Decision {
	d := Decision{From: current, To: current}

	if len(recent) > c.Window {
		recent = recent[:c.Window]
	}

	var sum float64
	var count int
	for _, e := range recent {
		if e.Level != current {
			continue
		}
		sum += e.Score
		count++
	}
	if count < c.Window {
		return d
	}

	d.Evaluated = true
	d.Mean = sum / float64(count)
	switch {
	case d.Mean >= c.Promote:
		d.To = current.Next()
	case d.Mean <= c.Demote:
		d.To = current.Previous()
	}
	return d
}
