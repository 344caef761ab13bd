package config

import (
	"errors"

	"github.com/evandrarf/tulis-be/internal/delivery/http/domain"
	"github.com/evandrarf/tulis-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func NewAPI(config *viper.Viper, log *logrus.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.GetString("app.name"),
		ErrorHandler: ErrorHandler(log),
		Prefork:      config.GetBool("api.prefork"),
		BodyLimit:    config.GetInt("api.body_limit"),
		ReadTimeout:  config.GetDuration("api.read_timeout"),
		WriteTimeout: config.GetDuration("api.write_timeout"),
		IdleTimeout:  config.GetDuration("api.idle_timeout"),
	})
}

// ErrorHandler renders errors that escaped the handlers (unknown routes,
// oversized bodies, panics caught by recover) in the response envelope.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": ctx.Method(),
				"path":   ctx.Path(),
			}).Error("unhandled request error")
			return response.NewInternalServerError().Send(ctx)
		}

		msg := domain.REQUEST_NOT_HANDLED
		switch code {
		case fiber.StatusNotFound:
			msg = domain.ROUTE_NOT_FOUND
		case fiber.StatusRequestEntityTooLarge:
			msg = domain.REQUEST_TOO_LARGE
		case fiber.StatusMethodNotAllowed:
			msg = domain.METHOD_NOT_ALLOWED
		}
		return response.NewFailed(msg, fiber.NewError(code, err.Error()), log).Send(ctx)
	}
}
