package entity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestExercise_FreeTextColumnsAreUnbounded(t *testing.T) {
	s, err := schema.Parse(&Exercise{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	// recognizer output lands in these columns verbatim
	for _, name := range []string{"RequestedText", "SubmittedText", "Feedback"} {
		field := s.LookUpField(name)
		require.NotNil(t, field, name)
		assert.Equal(t, "text", field.TagSettings["TYPE"], name)
		assert.Zero(t, field.Size, name)
	}
}

func TestExerciseLevel_Transitions(t *testing.T) {
	assert.Equal(t, LevelWords, LevelLetters.Next())
	assert.Equal(t, LevelCategory, LevelWords.Next())
	assert.Equal(t, LevelCategory, LevelCategory.Next())
	assert.Equal(t, LevelLetters, LevelLetters.Previous())
	assert.Equal(t, LevelWords, LevelCategory.Previous())
	assert.False(t, ExerciseLevel("sentences").Valid())
}

func TestExercise_CategoryMiss(t *testing.T) {
	yes, no := true, false
	assert.False(t, (&Exercise{}).CategoryMiss())
	assert.False(t, (&Exercise{InCategory: &yes}).CategoryMiss())
	assert.True(t, (&Exercise{InCategory: &no}).CategoryMiss())
}
