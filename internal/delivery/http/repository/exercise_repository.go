package repository

import (
	"time"

	"github.com/evandrarf/tulis-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const letterBatchSize = 100

type (
	ExerciseRepository interface {
		// Learner operations
		FindOrCreateLearner(db *gorm.DB, learnerID string) (*entity.Learner, error)
		FindLearner(db *gorm.DB, learnerID string) (*entity.Learner, error)
		UpdateLearnerLevel(db *gorm.DB, learnerID string, level entity.ExerciseLevel) error

		// Exercise operations
		CreateExercise(db *gorm.DB, exercise *entity.Exercise) error
		FindExerciseByID(db *gorm.DB, exerciseID string) (*entity.Exercise, error)
		FindExerciseWithLetters(db *gorm.DB, exerciseID string) (*entity.Exercise, error)
		FindOutstandingByLearner(db *gorm.DB, learnerID string) (*entity.Exercise, error)
		MarkSubmitted(db *gorm.DB, exercise *entity.Exercise) (int64, error)
		DeleteOutstanding(db *gorm.DB, exerciseID string) (int64, error)
		FindRecentSubmitted(db *gorm.DB, learnerID string, limit int) ([]entity.Exercise, error)
		FindSubmittedByLearner(db *gorm.DB, learnerID string) ([]entity.Exercise, error)

		// Letter operations
		CreateLetters(db *gorm.DB, letters []entity.SubmittedLetter) error
		FindLettersByLearner(db *gorm.DB, learnerID string) ([]entity.SubmittedLetter, error)
	}

	exerciseRepository struct {
		db *gorm.DB
	}
)

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

// Learner operations
func (r *exerciseRepository) FindOrCreateLearner(db *gorm.DB, learnerID string) (*entity.Learner, error) {
	if db == nil {
		db = r.db
	}
	learner := entity.Learner{ID: learnerID, Level: entity.LevelLetters}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&learner).Error; err != nil {
		return nil, err
	}
	return r.FindLearner(db, learnerID)
}

func (r *exerciseRepository) FindLearner(db *gorm.DB, learnerID string) (*entity.Learner, error) {
	if db == nil {
		db = r.db
	}
	var learner entity.Learner
	err := db.Where("id = ?", learnerID).First(&learner).Error
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *exerciseRepository) UpdateLearnerLevel(db *gorm.DB, learnerID string, level entity.ExerciseLevel) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.Learner{}).Where("id = ?", learnerID).Update("level", level).Error
}

// Exercise operations
func (r *exerciseRepository) CreateExercise(db *gorm.DB, exercise *entity.Exercise) error {
	if db == nil {
		db = r.db
	}
	return db.Create(exercise).Error
}

func (r *exerciseRepository) FindExerciseByID(db *gorm.DB, exerciseID string) (*entity.Exercise, error) {
	if db == nil {
		db = r.db
	}
	var exercise entity.Exercise
	err := db.Where("id = ?", exerciseID).First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) FindExerciseWithLetters(db *gorm.DB, exerciseID string) (*entity.Exercise, error) {
	if db == nil {
		db = r.db
	}
	var exercise entity.Exercise
	err := db.Preload("Letters", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", exerciseID).First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) FindOutstandingByLearner(db *gorm.DB, learnerID string) (*entity.Exercise, error) {
	if db == nil {
		db = r.db
	}
	var exercise entity.Exercise
	err := db.Where("learner_id = ? AND submitted_at IS NULL", learnerID).
		Order("generated_at DESC").
		First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// MarkSubmitted writes the submission result only while the exercise is still
// outstanding and returns the number of rows it changed.
func (r *exerciseRepository) MarkSubmitted(db *gorm.DB, exercise *entity.Exercise) (int64, error) {
	if db == nil {
		db = r.db
	}
	if exercise.SubmittedAt == nil {
		now := time.Now().UTC()
		exercise.SubmittedAt = &now
	}
	res := db.Model(&entity.Exercise{}).
		Where("id = ? AND submitted_at IS NULL", exercise.ID).
		Updates(map[string]any{
			"requested_text": exercise.RequestedText,
			"submitted_text": exercise.SubmittedText,
			"score":          exercise.Score,
			"feedback":       exercise.Feedback,
			"recognized_by":  exercise.RecognizedBy,
			"in_category":    exercise.InCategory,
			"submitted_at":   exercise.SubmittedAt,
		})
	return res.RowsAffected, res.Error
}

// DeleteOutstanding removes an exercise that has not been submitted yet.
func (r *exerciseRepository) DeleteOutstanding(db *gorm.DB, exerciseID string) (int64, error) {
	if db == nil {
		db = r.db
	}
	res := db.Where("id = ? AND submitted_at IS NULL", exerciseID).Delete(&entity.Exercise{})
	return res.RowsAffected, res.Error
}

func (r *exerciseRepository) FindRecentSubmitted(db *gorm.DB, learnerID string, limit int) ([]entity.Exercise, error) {
	if db == nil {
		db = r.db
	}
	var exercises []entity.Exercise
	err := db.Where("learner_id = ? AND submitted_at IS NOT NULL", learnerID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&exercises).Error
	return exercises, err
}

func (r *exerciseRepository) FindSubmittedByLearner(db *gorm.DB, learnerID string) ([]entity.Exercise, error) {
	if db == nil {
		db = r.db
	}
	var exercises []entity.Exercise
	err := db.Where("learner_id = ? AND submitted_at IS NOT NULL", learnerID).
		Order("submitted_at DESC").
		Find(&exercises).Error
	return exercises, err
}

// Letter operations
func (r *exerciseRepository) CreateLetters(db *gorm.DB, letters []entity.SubmittedLetter) error {
	if db == nil {
		db = r.db
	}
	if len(letters) == 0 {
		return nil
	}
	return db.CreateInBatches(&letters, letterBatchSize).Error
}

func (r *exerciseRepository) FindLettersByLearner(db *gorm.DB, learnerID string) ([]entity.SubmittedLetter, error) {
	if db == nil {
		db = r.db
	}
	var letters []entity.SubmittedLetter
	err := db.Joins("JOIN exercises ON exercises.id = submitted_letters.exercise_id").
		Where("exercises.learner_id = ? AND exercises.deleted_at IS NULL", learnerID).
		Order("submitted_letters.exercise_id, submitted_letters.position").
		Find(&letters).Error
	return letters, err
}
