package config

import (
	"context"

	"github.com/evandrarf/tulis-be/internal/delivery/http/handler"
	"github.com/evandrarf/tulis-be/internal/delivery/http/middleware"
	"github.com/evandrarf/tulis-be/internal/delivery/http/repository"
	"github.com/evandrarf/tulis-be/internal/delivery/http/route"
	"github.com/evandrarf/tulis-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tulis-be/internal/pkg/leveling"
	"github.com/evandrarf/tulis-be/internal/pkg/validate"
	"github.com/evandrarf/tulis-be/internal/pkg/wordsource"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

// Bootstrap wires the application. The returned function releases the
// recognizers and must be called on shutdown.
func Bootstrap(ctx context.Context, config *BootstrapConfig) (func() error, error) {
	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	recognizers, openai, err := NewRecognizers(ctx, config.Config, config.Log)
	if err != nil {
		return nil, err
	}

	wordRepo := repository.NewWordRepository(config.DB)
	words := &wordsource.Chain{Log: config.Log}
	if config.Config.GetBool("exercise.words.use_ai") && openai != nil {
		words.Sources = append(words.Sources, &wordsource.AI{
			Completer: openai,
			Timeout:   config.Config.GetDuration("exercise.words.ai_timeout"),
		})
	}
	words.Sources = append(words.Sources, &wordsource.Catalog{DB: config.DB, Picker: wordRepo})

	categories, err := wordRepo.FindCategories(nil)
	if err != nil {
		return nil, err
	}

	exerciseRepo := repository.NewExerciseRepository(config.DB)
	exerciseUsecase := usecase.NewExerciseUsecase(usecase.ExerciseConfig{
		DB:         config.DB,
		Repository: exerciseRepo,
		Words:      words,
		Categories: categories,
		Reader:     recognizers,
		Leveling: leveling.NewController(
			config.Config.GetInt("leveling.window"),
			config.Config.GetFloat64("leveling.promote"),
			config.Config.GetFloat64("leveling.demote"),
		),
		MaxImageBytes: config.Config.GetInt("exercise.max_image_bytes"),
		Log:           config.Log,
	})
	exerciseHandler := handler.NewExerciseHandler(config.Validator, config.Log, exerciseUsecase)

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		ExerciseHandler: exerciseHandler,
	})

	return recognizers.Close, nil
}
