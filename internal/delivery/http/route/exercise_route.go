package route

import (
	"github.com/evandrarf/tulis-be/internal/delivery/http/handler"
	"github.com/evandrarf/tulis-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupExerciseRoute(api *fiber.App, handler handler.ExerciseHandler, m *middleware.Middleware) {
	router := api.Group("/exercises")
	{
		router.Post("/", m.RequireLearner(), handler.Generate)
		router.Put("/:id/submit", m.RequireLearner(), handler.Submit)
		router.Delete("/:id", m.RequireLearner(), handler.Discard)
		router.Get("/:id", handler.GetExercise)
	}

	learnerRouter := api.Group("/learners")
	{
		learnerRouter.Get("/:id/submissions", handler.ListSubmissions)
		learnerRouter.Get("/:id/stats", handler.GetStats)
	}
}
