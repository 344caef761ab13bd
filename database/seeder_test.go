package database

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evandrarf/tulis-be/internal/delivery/http/repository"
)

func TestSeedCategorizedWords(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	require.NoError(t, SeedCategorizedWords(db, log))
	require.NoError(t, SeedCategorizedWords(db, log))

	repo := repository.NewWordRepository(db)
	total := 0
	for _, words := range CategoryWords {
		total += len(words)
	}
	count, err := repo.CountWords(nil)
	require.NoError(t, err)
	assert.EqualValues(t, total, count)

	categories, err := repo.FindCategories(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"animal", "body", "color", "food", "nature", "vehicle"}, categories)

	word, err := repo.FindRandomWord(nil, "color")
	require.NoError(t, err)
	assert.Contains(t, CategoryWords["color"], word)

	_, err = repo.FindRandomWord(nil, "planet")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryWordsArePlain(t *testing.T) {
	for category, words := range CategoryWords {
		seen := map[string]bool{}
		for _, w := range words {
			assert.Regexp(t, `^[a-z]{3,8}$`, w, category)
			assert.False(t, seen[w], "duplicate %s in %s", w, category)
			seen[w] = true
		}
	}
}
