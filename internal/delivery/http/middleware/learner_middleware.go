package middleware

import (
	"strings"

	"github.com/evandrarf/tulis-be/internal/delivery/http/domain"
	"github.com/evandrarf/tulis-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
)

const (
	LearnerIDHeader = "X-Learner-ID"
	LearnerIDKey    = "learner_id"
)

// RequireLearner trusts the learner id set by the upstream gateway.
func (m *Middleware) RequireLearner() fiber.Handler {
	header := LearnerIDHeader
	if m.LearnerHeader != "" {
		header = m.LearnerHeader
	}
	return func(ctx *fiber.Ctx) error {
		id := strings.TrimSpace(ctx.Get(header))
		if id == "" || len(id) > 100 {
			return response.NewFailed(domain.LEARNER_ID_REQUIRED, fiber.NewError(fiber.StatusUnauthorized, ""), m.Log).Send(ctx)
		}
		ctx.Locals(LearnerIDKey, id)
		return ctx.Next()
	}
}

// LearnerID returns the id stored by RequireLearner.
func LearnerID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LearnerIDKey).(string)
	return id
}
