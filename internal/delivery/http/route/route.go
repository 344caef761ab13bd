package route

import (
	"github.com/evandrarf/tulis-be/internal/delivery/http/domain"
	"github.com/evandrarf/tulis-be/internal/delivery/http/handler"
	"github.com/evandrarf/tulis-be/internal/delivery/http/middleware"
	"github.com/evandrarf/tulis-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	ExerciseHandler handler.ExerciseHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} (${latency})\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	c.Api.Get("/health", func(ctx *fiber.Ctx) error {
		return response.NewSuccess(domain.HEALTH_OK, nil, nil).Send(ctx)
	})

	SetupExerciseRoute(c.Api, c.ExerciseHandler, c.Middleware)
}
