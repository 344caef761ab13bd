package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExerciseLevel - tingkat latihan, urut dari yang paling mudah
type ExerciseLevel string

const (
	LevelLetters  ExerciseLevel = "letters"
	LevelWords    ExerciseLevel = "words"
	LevelCategory ExerciseLevel = "category"
)

var levelOrder = []ExerciseLevel{LevelLetters, LevelWords, LevelCategory}

// Valid reports whether l is one of the known levels.
func (l ExerciseLevel) Valid() bool {
	return l.rank() >= 0
}

// Next returns the level above l, or l itself at the ceiling.
func (l ExerciseLevel) Next() ExerciseLevel {
	i := l.rank()
	if i < 0 || i == len(levelOrder)-1 {
		return l
	}
	return levelOrder[i+1]
}

// Previous returns the level below l, or l itself at the floor.
func (l ExerciseLevel) Previous() ExerciseLevel {
	i := l.rank()
	if i <= 0 {
		return l
	}
	return levelOrder[i-1]
}

func (l ExerciseLevel) rank() int {
	for i, v := range levelOrder {
		if v == l {
			return i
		}
	}
	return -1
}

// Learner - profil anak yang berlatih menulis
type Learner struct {
	ID             string        `gorm:"primaryKey;size:100" json:"id"`                    // id dari layanan akun
	GuidingAdultID *string       `gorm:"size:100;index" json:"guiding_adult_id,omitempty"` // orang tua / guru pendamping
	Level          ExerciseLevel `gorm:"size:20;not null;default:letters" json:"level"`    // tingkat saat ini
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Learner) TableName() string {
	return "learners"
}

// Exercise - satu soal menulis beserta hasil penilaiannya
type Exercise struct {
	ID            string            `gorm:"primaryKey;size:36" json:"id"`
	LearnerID     string            `gorm:"size:100;not null;index" json:"learner_id"`
	RequestedText string            `gorm:"type:text;not null" json:"requested_text"` // teks yang diminta
	SubmittedText string            `gorm:"type:text;not null;default:''" json:"submitted_text"`
	Level         ExerciseLevel     `gorm:"size:20;not null;index" json:"level"`
	Category      *string           `gorm:"size:50" json:"category,omitempty"`
	Score         *float64          `json:"score,omitempty"`                     // nil sampai dikumpulkan
	Feedback      *string           `gorm:"type:text" json:"feedback,omitempty"` // analisis tulisan untuk pendamping
	RecognizedBy  *string           `gorm:"size:50" json:"recognized_by,omitempty"`
	InCategory    *bool             `json:"in_category,omitempty"` // hasil verdict kategori, nil di luar level category
	GeneratedAt   time.Time         `gorm:"not null" json:"generated_at"`
	SubmittedAt   *time.Time        `gorm:"index" json:"submitted_at,omitempty"` // nil = belum dikumpulkan
	Letters       []SubmittedLetter `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"letters,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

func (e *Exercise) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.GeneratedAt.IsZero() {
		e.GeneratedAt = time.Now().UTC()
	}
	return nil
}

// Outstanding reports whether the exercise is still waiting for a submission.
func (e *Exercise) Outstanding() bool {
	return e.SubmittedAt == nil
}

// CategoryMiss reports whether the child wrote a word outside the requested
// category. Its letter rows are aligned against a word the child never saw.
func (e *Exercise) CategoryMiss() bool {
	return e.InCategory != nil && !*e.InCategory
}

// SubmittedLetter - hasil penilaian satu posisi huruf
type SubmittedLetter struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	ExerciseID      string    `gorm:"size:36;not null;uniqueIndex:idx_letter_position" json:"exercise_id"`
	Position        int       `gorm:"not null;uniqueIndex:idx_letter_position" json:"position"`
	ExpectedLetter  string    `gorm:"size:8;not null;index" json:"expected_letter"`
	SubmittedLetter string    `gorm:"size:8;not null;default:''" json:"submitted_letter"` // kosong jika tidak terbaca
	Score           float64   `gorm:"not null" json:"score"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SubmittedLetter) TableName() string {
	return "submitted_letters"
}

// CategorizedWord - bank kata per kategori untuk level words dan category
type CategorizedWord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Category  string    `gorm:"size:50;not null;uniqueIndex:idx_category_word" json:"category"`
	Word      string    `gorm:"size:100;not null;uniqueIndex:idx_category_word" json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

func (CategorizedWord) TableName() string {
	return "categorized_words"
}
