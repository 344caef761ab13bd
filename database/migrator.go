package database

import (
	"github.com/evandrarf/tulis-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Learner{},
		&entity.Exercise{},
		&entity.SubmittedLetter{},
		&entity.CategorizedWord{},
	)
	return err
}
