package database

import (
	"fmt"

	"github.com/evandrarf/tulis-be/internal/delivery/http/repository"
	"github.com/evandrarf/tulis-be/internal/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategoryWords - bank kata awal per kategori, huruf kecil semua
var CategoryWords = map[string][]string{
	"animal":  {"cat", "dog", "cow", "pig", "hen", "fox", "owl", "bear", "duck", "frog", "fish", "lion", "goat", "horse", "mouse", "sheep", "tiger", "zebra", "rabbit", "monkey"},
	"vehicle": {"car", "bus", "van", "cab", "jeep", "ship", "boat", "tram", "bike", "taxi", "truck", "train", "plane", "scooter", "tractor"},
	"food":    {"egg", "pie", "jam", "rice", "soup", "cake", "milk", "bread", "apple", "pear", "plum", "grape", "lemon", "pizza", "carrot", "banana"},
	"color":   {"red", "tan", "blue", "pink", "gray", "gold", "green", "black", "white", "brown", "orange", "purple", "yellow"},
	"body":    {"arm", "leg", "ear", "eye", "lip", "toe", "hand", "foot", "nose", "head", "knee", "neck", "chin", "mouth", "finger", "elbow"},
	"nature":  {"sun", "sky", "sea", "moon", "star", "tree", "leaf", "rain", "snow", "rock", "lake", "hill", "river", "cloud", "flower", "forest"},
}

// SeedCategorizedWords - isi tabel categorized_words jika masih kosong
func SeedCategorizedWords(db *gorm.DB, log *logrus.Logger) error {
	repo := repository.NewWordRepository(db)

	count, err := repo.CountWords(nil)
	if err != nil {
		return fmt.Errorf("failed to count categorized words: %w", err)
	}
	if count > 0 {
		log.Info("Categorized words already seeded, skipping...")
		return nil
	}

	var words []entity.CategorizedWord
	for category, list := range CategoryWords {
		for _, w := range list {
			words = append(words, entity.CategorizedWord{Category: category, Word: w})
		}
	}

	if err := repo.CreateWords(nil, words); err != nil {
		return fmt.Errorf("failed to seed categorized words: %w", err)
	}

	log.Infof("Successfully seeded %d categorized words", len(words))
	return nil
}
