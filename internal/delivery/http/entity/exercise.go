package entity

import (
	"time"

	"github.com/evandrarf/tulis-be/internal/pkg/stats"
)

// Response untuk soal latihan
type ExerciseResponse struct {
	ID            string     `json:"id"`
	LearnerID     string     `json:"learner_id"`
	RequestedText string     `json:"requested_text"`
	SubmittedText string     `json:"submitted_text,omitempty"`
	Level         string     `json:"level"`
	Category      *string    `json:"category,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	Feedback      *string    `json:"feedback,omitempty"`
	RecognizedBy  *string    `json:"recognized_by,omitempty"`
	InCategory    *bool      `json:"in_category,omitempty"`
	GeneratedAt   time.Time  `json:"generated_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	Letters       []Letter   `json:"letters,omitempty"`
}

// Hasil penilaian per huruf
type Letter struct {
	Position        int     `json:"position"`
	ExpectedLetter  string  `json:"expected_letter"`
	SubmittedLetter string  `json:"submitted_letter"`
	Score           float64 `json:"score"`
}

// Response untuk pengumpulan jawaban
type SubmissionResponse struct {
	Exercise        ExerciseResponse `json:"exercise"`
	StructuralScore float64          `json:"structural_score"`
	EditScore       float64          `json:"edit_score"`
	InCategory      *bool            `json:"in_category,omitempty"`
	PreviousLevel   string           `json:"previous_level"`
	Level           string           `json:"level"`
	LevelChanged    bool             `json:"level_changed"`
}

type ExerciseIDParam struct {
	ID string `params:"id" json:"id" validate:"required,uuid"`
}

type LearnerIDParam struct {
	ID string `params:"id" json:"id" validate:"required,max=100"`
}

// Response untuk statistik anak
type StatsResponse struct {
	LearnerID string `json:"learner_id"`
	Level     string `json:"level"`
	stats.Report
}
