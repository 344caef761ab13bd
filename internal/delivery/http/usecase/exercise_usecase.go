package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/evandrarf/tulis-be/internal/delivery/http/entity"
	"github.com/evandrarf/tulis-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/tulis-be/internal/entity"
	"github.com/evandrarf/tulis-be/internal/pkg/imagecheck"
	"github.com/evandrarf/tulis-be/internal/pkg/leveling"
	"github.com/evandrarf/tulis-be/internal/pkg/mapper"
	"github.com/evandrarf/tulis-be/internal/pkg/prompt"
	"github.com/evandrarf/tulis-be/internal/pkg/recognizer"
	"github.com/evandrarf/tulis-be/internal/pkg/scoring"
	"github.com/evandrarf/tulis-be/internal/pkg/stats"
	"github.com/evandrarf/tulis-be/internal/pkg/wordsource"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrLearnerNotFound  = errors.New("learner not found")
	ErrAlreadySubmitted = errors.New("exercise already submitted")
	ErrNotOwner         = errors.New("exercise belongs to another learner")
)

const (
	asciiLetters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minLetterRepeat = 3
	maxLetterRepeat = 8
)

// DefaultCategories are the categories exercises are drawn from when none
// are configured.
var DefaultCategories = []string{"animal", "vehicle", "food", "color", "body", "nature"}

type ExerciseUsecase interface {
	Generate(ctx context.Context, learnerID string) (*entity.ExerciseResponse, bool, error)
	Submit(ctx context.Context, learnerID, exerciseID string, image []byte) (*entity.SubmissionResponse, error)
	Discard(ctx context.Context, learnerID, exerciseID string) error
	GetExercise(ctx context.Context, exerciseID string) (*entity.ExerciseResponse, error)
	ListSubmissions(ctx context.Context, learnerID string) ([]entity.ExerciseResponse, error)
	GetStats(ctx context.Context, learnerID string) (*entity.StatsResponse, error)
}

// Reader reads a submission image. *recognizer.Set implements it.
type Reader interface {
	Read(ctx context.Context, img recognizer.Image, task prompt.Task) recognizer.Reading
}

type ExerciseConfig struct {
	DB            *gorm.DB
	Repository    repository.ExerciseRepository
	Words         wordsource.Source
	Categories    []string
	Reader        Reader
	Leveling      leveling.Controller
	MaxImageBytes int
	Log           *logrus.Logger
}

type exerciseUsecase struct {
	cfg   ExerciseConfig
	locks *learnerLocks
	intN  func(n int) int
}

func NewExerciseUsecase(cfg ExerciseConfig) ExerciseUsecase {
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.Leveling.Window == 0 {
		cfg.Leveling = leveling.NewController(0, 0, 0)
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return &exerciseUsecase{
		cfg:   cfg,
		locks: newLearnerLocks(),
		intN:  rand.IntN,
	}
}

// Generate returns the learner's outstanding exercise, or creates one at the
// learner's level. The bool reports whether a new exercise was created.
func (u *exerciseUsecase) Generate(ctx context.Context, learnerID string) (*entity.ExerciseResponse, bool, error) {
	unlock := u.locks.lock(learnerID)
	defer unlock()

	db := u.cfg.DB.WithContext(ctx)

	learner, err := u.cfg.Repository.FindOrCreateLearner(db, learnerID)
	if err != nil {
		return nil, false, fmt.Errorf("load learner: %w", err)
	}

	outstanding, err := u.cfg.Repository.FindOutstandingByLearner(db, learnerID)
	if err == nil {
		res := mapper.ToExerciseResponse(outstanding)
		return &res, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find outstanding exercise: %w", err)
	}

	exercise := &internalEntity.Exercise{
		LearnerID: learnerID,
		Level:     learner.Level,
	}
	switch learner.Level {
	case internalEntity.LevelWords, internalEntity.LevelCategory:
		category := u.cfg.Categories[u.intN(len(u.cfg.Categories))]
		word, err := u.cfg.Words.Word(ctx, category)
		if err != nil {
			return nil, false, fmt.Errorf("pick word: %w", err)
		}
		exercise.Category = &category
		exercise.RequestedText = word
	default:
		exercise.Level = internalEntity.LevelLetters
		exercise.RequestedText = u.letters()
	}

	if err := u.cfg.Repository.CreateExercise(db, exercise); err != nil {
		return nil, false, fmt.Errorf("create exercise: %w", err)
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"learner_id":  learnerID,
		"exercise_id": exercise.ID,
		"level":       exercise.Level,
	}).Info("exercise generated")

	res := mapper.ToExerciseResponse(exercise)
	return &res, true, nil
}

func (u *exerciseUsecase) letters() string {
	letter := asciiLetters[u.intN(len(asciiLetters))]
	n := minLetterRepeat + u.intN(maxLetterRepeat-minLetterRepeat+1)
	return strings.Repeat(string(letter), n)
}

// Submit reads the image, scores it against the requested text and stores the
// result together with any level change, all in one transaction.
func (u *exerciseUsecase) Submit(ctx context.Context, learnerID, exerciseID string, image []byte) (*entity.SubmissionResponse, error) {
	info, err := imagecheck.Check(image, u.cfg.MaxImageBytes)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.lock(learnerID)
	defer unlock()

	db := u.cfg.DB.WithContext(ctx)

	exercise, err := u.findOwned(db, learnerID, exerciseID)
	if err != nil {
		return nil, err
	}
	if !exercise.Outstanding() {
		return nil, ErrAlreadySubmitted
	}

	log := u.cfg.Log.WithFields(logrus.Fields{
		"learner_id":  learnerID,
		"exercise_id": exerciseID,
		"level":       exercise.Level,
	})

	category := ""
	if exercise.Category != nil {
		category = *exercise.Category
	}
	task := prompt.Build(exercise.Level, category)
	reading := u.cfg.Reader.Read(ctx, recognizer.Image{Data: image, MIMEType: info.MIMEType}, task)

	expected := exercise.RequestedText
	if reading.Answer.Verdict == prompt.VerdictMember && reading.Answer.Corrected != "" {
		expected = reading.Answer.Corrected
	}

	result := scoring.Fuse(expected,
		scoring.Reading{Text: reading.Answer.Transcription},
		scoring.Reading{Text: reading.OCR.Text, Confidences: reading.OCR.Confidences},
	)

	score := result.Score
	exercise.RequestedText = expected
	exercise.SubmittedText = result.SubmittedText
	if reading.Answer.Verdict == prompt.VerdictNotMember {
		exercise.SubmittedText = reading.Answer.Transcription
		score = 0
	}
	exercise.Score = &score
	if reading.Answer.Verdict != prompt.VerdictNone {
		in := reading.Answer.Verdict == prompt.VerdictMember
		exercise.InCategory = &in
	}
	if reading.Answer.Feedback != "" {
		exercise.Feedback = &reading.Answer.Feedback
	}
	if source := recognizedBy(reading); source != "" {
		exercise.RecognizedBy = &source
	}
	now := time.Now().UTC()
	exercise.SubmittedAt = &now

	letters := make([]internalEntity.SubmittedLetter, 0, len(result.Letters))
	for _, l := range result.Letters {
		letters = append(letters, internalEntity.SubmittedLetter{
			ExerciseID:      exercise.ID,
			Position:        l.Position,
			ExpectedLetter:  l.Expected,
			SubmittedLetter: l.Submitted,
			Score:           l.Confidence,
		})
	}

	var decision leveling.Decision
	err = db.Transaction(func(tx *gorm.DB) error {
		n, err := u.cfg.Repository.MarkSubmitted(tx, exercise)
		if err != nil {
			return fmt.Errorf("save submission: %w", err)
		}
		if n != 1 {
			return ErrAlreadySubmitted
		}

		if err := u.cfg.Repository.CreateLetters(tx, letters); err != nil {
			return fmt.Errorf("save letters: %w", err)
		}

		decision, err = u.adaptLevel(tx, learnerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	exercise.Letters = letters
	log.WithFields(logrus.Fields{
		"score":         score,
		"structural":    result.StructuralScore,
		"edit":          result.EditScore,
		"recognized_by": exercise.RecognizedBy,
	}).Info("exercise submitted")
	if decision.Changed() {
		log.WithFields(logrus.Fields{
			"from": decision.From,
			"to":   decision.To,
			"mean": decision.Mean,
		}).Info("learner level changed")
	}

	res := &entity.SubmissionResponse{
		Exercise:        mapper.ToExerciseResponse(exercise),
		StructuralScore: result.StructuralScore,
		EditScore:       result.EditScore,
		PreviousLevel:   string(decision.From),
		Level:           string(decision.To),
		LevelChanged:    decision.Changed(),
		InCategory:      exercise.InCategory,
	}
	return res, nil
}

// adaptLevel evaluates the learner's latest submissions, including the one
// just stored, and applies the resulting level.
func (u *exerciseUsecase) adaptLevel(tx *gorm.DB, learnerID string) (leveling.Decision, error) {
	learner, err := u.cfg.Repository.FindLearner(tx, learnerID)
	if err != nil {
		return leveling.Decision{}, fmt.Errorf("load learner: %w", err)
	}

	recent, err := u.cfg.Repository.FindRecentSubmitted(tx, learnerID, u.cfg.Leveling.Window)
	if err != nil {
		return leveling.Decision{}, fmt.Errorf("load recent exercises: %w", err)
	}
	entries := make([]leveling.Entry, 0, len(recent))
	for _, e := range recent {
		entry := leveling.Entry{Level: e.Level}
		if e.Score != nil {
			entry.Score = *e.Score
		}
		entries = append(entries, entry)
	}

	decision := u.cfg.Leveling.Evaluate(learner.Level, entries)
	if decision.Changed() {
		if err := u.cfg.Repository.UpdateLearnerLevel(tx, learnerID, decision.To); err != nil {
			return leveling.Decision{}, fmt.Errorf("update level: %w", err)
		}
	}
	return decision, nil
}

func recognizedBy(r recognizer.Reading) string {
	if r.VLM.Source != "" {
		return r.VLM.Source
	}
	return r.OCR.Source
}

// Discard deletes an exercise the learner has not submitted yet.
func (u *exerciseUsecase) Discard(ctx context.Context, learnerID, exerciseID string) error {
	unlock := u.locks.lock(learnerID)
	defer unlock()

	db := u.cfg.DB.WithContext(ctx)

	exercise, err := u.findOwned(db, learnerID, exerciseID)
	if err != nil {
		return err
	}
	if !exercise.Outstanding() {
		return ErrAlreadySubmitted
	}

	n, err := u.cfg.Repository.DeleteOutstanding(db, exerciseID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if n == 0 {
		return ErrAlreadySubmitted
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"learner_id":  learnerID,
		"exercise_id": exerciseID,
	}).Info("exercise discarded")
	return nil
}

func (u *exerciseUsecase) findOwned(db *gorm.DB, learnerID, exerciseID string) (*internalEntity.Exercise, error) {
	exercise, err := u.cfg.Repository.FindExerciseByID(db, exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	if exercise.LearnerID != learnerID {
		return nil, ErrNotOwner
	}
	return exercise, nil
}

func (u *exerciseUsecase) GetExercise(ctx context.Context, exerciseID string) (*entity.ExerciseResponse, error) {
	exercise, err := u.cfg.Repository.FindExerciseWithLetters(u.cfg.DB.WithContext(ctx), exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	res := mapper.ToExerciseResponse(exercise)
	return &res, nil
}

// ListSubmissions returns the learner's submitted exercises, newest first.
func (u *exerciseUsecase) ListSubmissions(ctx context.Context, learnerID string) ([]entity.ExerciseResponse, error) {
	db := u.cfg.DB.WithContext(ctx)
	if err := u.requireLearner(db, learnerID); err != nil {
		return nil, err
	}

	exercises, err := u.cfg.Repository.FindSubmittedByLearner(db, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return mapper.ToExerciseResponses(exercises), nil
}

func (u *exerciseUsecase) GetStats(ctx context.Context, learnerID string) (*entity.StatsResponse, error) {
	db := u.cfg.DB.WithContext(ctx)
	learner, err := u.cfg.Repository.FindLearner(db, learnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLearnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load learner: %w", err)
	}

	letters, err := u.cfg.Repository.FindLettersByLearner(db, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load letters: %w", err)
	}
	exercises, err := u.cfg.Repository.FindSubmittedByLearner(db, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	return &entity.StatsResponse{
		LearnerID: learnerID,
		Level:     string(learner.Level),
		Report:    stats.Compute(letters, exercises),
	}, nil
}

func (u *exerciseUsecase) requireLearner(db *gorm.DB, learnerID string) error {
	_, err := u.cfg.Repository.FindLearner(db, learnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLearnerNotFound
	}
	if err != nil {
		return fmt.Errorf("load learner: %w", err)
	}
	return nil
}
