package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func (m *Middleware) CorsMiddleware() fiber.Handler {
	allowOrigins := "*"
	learnerHeader := LearnerIDHeader
	if m != nil {
		if m.Config != nil {
			if v := m.Config.GetString("api.cors.origins"); v != "" {
				allowOrigins = v
			}
		}
		if m.LearnerHeader != "" {
			learnerHeader = m.LearnerHeader
		}
	}

	return cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Content-Length, Accept-Encoding, " + learnerHeader,
		AllowMethods:  "GET, POST, PUT, DELETE",
		AllowOrigins:  allowOrigins,
		ExposeHeaders: "Content-Length, Content-Type",
		MaxAge:        600,
	})
}
