package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandrarf/tulis-be/internal/entity"
)

func letter(expected, submitted string, score float64) entity.SubmittedLetter {
	return entity.SubmittedLetter{ExpectedLetter: expected, SubmittedLetter: submitted, Score: score}
}

func repeat(l entity.SubmittedLetter, n int) []entity.SubmittedLetter {
	out := make([]entity.SubmittedLetter, n)
	for i := range out {
		out[i] = l
	}
	return out
}

func submitted(level entity.ExerciseLevel, score float64, at time.Time) entity.Exercise {
	return entity.Exercise{Level: level, Score: &score, SubmittedAt: &at}
}

func TestLetterScores(t *testing.T) {
	letters := []entity.SubmittedLetter{
		letter("b", "b", 0.9),
		letter("b", "d", 0.8),
		letter("a", "a", 0.5),
	}

	got := Compute(letters, nil).LetterScores

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Letter)
	assert.InDelta(t, 50, got[0].AvgScore, 1e-9)
	assert.Equal(t, "b", got[1].Letter)
	// (0.9 + 0) / 2 = 0.45
	assert.InDelta(t, 45, got[1].AvgScore, 1e-9)
}

func TestLevelAndDailyScores(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	exercises := []entity.Exercise{
		submitted(entity.LevelWords, 0.5, day2),
		submitted(entity.LevelLetters, 1, day1),
		submitted(entity.LevelLetters, 0.333, day1),
		{Level: entity.LevelCategory},
	}

	report := Compute(nil, exercises)

	require.Len(t, report.LevelScores, 2)
	assert.Equal(t, entity.LevelLetters, report.LevelScores[0].Level)
	// 0.6665 rounds to 0.67
	assert.InDelta(t, 67, report.LevelScores[0].AvgScore, 1e-9)
	assert.Equal(t, entity.LevelWords, report.LevelScores[1].Level)

	require.Len(t, report.DailyScores, 2)
	assert.Equal(t, "2026-03-01", report.DailyScores[0].Day)
	assert.Equal(t, 2, report.DailyScores[0].ExerciseCount)
	assert.Equal(t, "2026-03-02", report.DailyScores[1].Day)
	assert.InDelta(t, 50, report.DailyScores[1].AvgScore, 1e-9)
}

func TestOftenConfused(t *testing.T) {
	t.Run("reported at three times and 75 percent", func(t *testing.T) {
		letters := append(repeat(letter("b", "d", 0.8), 3), letter("b", "b", 1))

		got := Compute(letters, nil).OftenConfusedLetters

		require.Len(t, got, 1)
		assert.Equal(t, ConfusedLetter{Letter: "b", ConfusedWith: "d", Times: 3, ConfusionPercentage: 75}, got[0])
	})

	t.Run("two confusions are not enough", func(t *testing.T) {
		letters := repeat(letter("b", "d", 0.8), 2)

		assert.Empty(t, Compute(letters, nil).OftenConfusedLetters)
	})

	t.Run("fifty percent is not enough", func(t *testing.T) {
		letters := append(repeat(letter("p", "q", 0.8), 10), repeat(letter("p", "p", 1), 10)...)

		assert.Empty(t, Compute(letters, nil).OftenConfusedLetters)
	})

	t.Run("empty readings never count as confusion", func(t *testing.T) {
		letters := repeat(letter("m", "", 0), 5)

		assert.Empty(t, Compute(letters, nil).OftenConfusedLetters)
	})

	t.Run("only the most frequent confusion is reported", func(t *testing.T) {
		letters := append(repeat(letter("n", "m", 0.7), 7), repeat(letter("n", "u", 0.7), 3)...)

		got := Compute(letters, nil).OftenConfusedLetters

		// 7 of 10 appearances
		require.Len(t, got, 1)
		assert.Equal(t, "m", got[0].ConfusedWith)
		assert.Equal(t, float64(70), got[0].ConfusionPercentage)
	})
}

func TestCompute_Empty(t *testing.T) {
	report := Compute(nil, nil)

	assert.NotNil(t, report.LetterScores)
	assert.NotNil(t, report.LevelScores)
	assert.NotNil(t, report.DailyScores)
	assert.NotNil(t, report.OftenConfusedLetters)
}

func TestCategoryMissLettersExcluded(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	miss := submitted(entity.LevelCategory, 0, at)
	miss.ID = "miss"
	miss.InCategory = new(bool)
	hit := submitted(entity.LevelCategory, 1, at)
	hit.ID = "hit"
	inCategory := true
	hit.InCategory = &inCategory

	// the child wrote "car" where "cat" was only a sample of the category
	var letters []entity.SubmittedLetter
	for i := 0; i < 3; i++ {
		l := letter("t", "r", 0.9)
		l.ExerciseID = "miss"
		letters = append(letters, l)
	}
	kept := letter("t", "t", 1)
	kept.ExerciseID = "hit"
	letters = append(letters, kept)

	report := Compute(letters, []entity.Exercise{miss, hit})

	assert.Empty(t, report.OftenConfusedLetters)
	require.Len(t, report.LetterScores, 1)
	assert.InDelta(t, 100, report.LetterScores[0].AvgScore, 1e-9)
	// the miss still counts toward the level average
	require.Len(t, report.LevelScores, 1)
	assert.InDelta(t, 50, report.LevelScores[0].AvgScore, 1e-9)
}
