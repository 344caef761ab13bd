package repository

import (
	"github.com/evandrarf/tulis-be/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	WordRepository interface {
		CreateWords(db *gorm.DB, words []entity.CategorizedWord) error
		CountWords(db *gorm.DB) (int64, error)
		FindCategories(db *gorm.DB) ([]string, error)
		FindRandomWord(db *gorm.DB, category string) (string, error)
	}

	wordRepository struct {
		db *gorm.DB
	}
)

func NewWordRepository(db *gorm.DB) WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) CreateWords(db *gorm.DB, words []entity.CategorizedWord) error {
	if db == nil {
		db = r.db
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&words).Error
}

func (r *wordRepository) CountWords(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.CategorizedWord{}).Count(&count).Error
	return count, err
}

func (r *wordRepository) FindCategories(db *gorm.DB) ([]string, error) {
	if db == nil {
		db = r.db
	}
	var categories []string
	err := db.Model(&entity.CategorizedWord{}).Distinct("category").Order("category").Pluck("category", &categories).Error
	return categories, err
}

// FindRandomWord returns gorm.ErrRecordNotFound when the category has no
// words.
func (r *wordRepository) FindRandomWord(db *gorm.DB, category string) (string, error) {
	if db == nil {
		db = r.db
	}
	var word entity.CategorizedWord
	err := db.Where("category = ?", category).Order("RANDOM()").Take(&word).Error
	if err != nil {
		return "", err
	}
	return word.Word, nil
}
