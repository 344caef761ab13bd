package handler

import (
	"errors"
	"io"

	"github.com/evandrarf/tulis-be/internal/delivery/http/domain"
	"github.com/evandrarf/tulis-be/internal/delivery/http/entity"
	"github.com/evandrarf/tulis-be/internal/delivery/http/middleware"
	"github.com/evandrarf/tulis-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tulis-be/internal/pkg/imagecheck"
	"github.com/evandrarf/tulis-be/internal/pkg/response"
	"github.com/evandrarf/tulis-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ExerciseHandler interface {
		Generate(ctx *fiber.Ctx) error
		Submit(ctx *fiber.Ctx) error
		Discard(ctx *fiber.Ctx) error
		GetExercise(ctx *fiber.Ctx) error
		ListSubmissions(ctx *fiber.Ctx) error
		GetStats(ctx *fiber.Ctx) error
	}

	exerciseHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ExerciseUsecase
	}
)

func NewExerciseHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ExerciseUsecase) ExerciseHandler {
	return &exerciseHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /exercises
func (h *exerciseHandler) Generate(ctx *fiber.Ctx) error {
	exercise, created, err := h.usecase.Generate(ctx.UserContext(), middleware.LearnerID(ctx))
	if err != nil {
		return h.fail(ctx, domain.EXERCISE_GENERATE_FAILED, err)
	}

	if !created {
		return response.NewSuccess(domain.EXERCISE_GENERATE_EXISTING, exercise, nil).Send(ctx)
	}
	return response.NewCreated(domain.EXERCISE_GENERATE_SUCCESS, exercise).Send(ctx)
}

// PUT /exercises/:id/submit (multipart, field "image")
func (h *exerciseHandler) Submit(ctx *fiber.Ctx) error {
	var params entity.ExerciseIDParam
	if err := h.validator.ParseAndValidateParams(ctx, &params); err != nil {
		return response.NewFailed(domain.EXERCISE_SUBMIT_FAILED, err, h.logger).Send(ctx)
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return response.NewFailed(domain.IMAGE_REQUIRED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}
	f, err := file.Open()
	if err != nil {
		return response.NewFailed(domain.IMAGE_INVALID, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return response.NewFailed(domain.IMAGE_INVALID, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.Submit(ctx.UserContext(), middleware.LearnerID(ctx), params.ID, image)
	if err != nil {
		return h.fail(ctx, domain.EXERCISE_SUBMIT_FAILED, err)
	}

	return response.NewSuccess(domain.EXERCISE_SUBMIT_SUCCESS, result, nil).Send(ctx)
}

// DELETE /exercises/:id
func (h *exerciseHandler) Discard(ctx *fiber.Ctx) error {
	var params entity.ExerciseIDParam
	if err := h.validator.ParseAndValidateParams(ctx, &params); err != nil {
		return response.NewFailed(domain.EXERCISE_DISCARD_FAILED, err, h.logger).Send(ctx)
	}

	if err := h.usecase.Discard(ctx.UserContext(), middleware.LearnerID(ctx), params.ID); err != nil {
		return h.fail(ctx, domain.EXERCISE_DISCARD_FAILED, err)
	}

	return response.NewSuccess(domain.EXERCISE_DISCARD_SUCCESS, nil, nil).Send(ctx)
}

// GET /exercises/:id
func (h *exerciseHandler) GetExercise(ctx *fiber.Ctx) error {
	var params entity.ExerciseIDParam
	if err := h.validator.ParseAndValidateParams(ctx, &params); err != nil {
		return response.NewFailed(domain.EXERCISE_GET_FAILED, err, h.logger).Send(ctx)
	}

	exercise, err := h.usecase.GetExercise(ctx.UserContext(), params.ID)
	if err != nil {
		return h.fail(ctx, domain.EXERCISE_GET_FAILED, err)
	}

	return response.NewSuccess(domain.EXERCISE_GET_SUCCESS, exercise, nil).Send(ctx)
}

// GET /learners/:id/submissions
func (h *exerciseHandler) ListSubmissions(ctx *fiber.Ctx) error {
	var params entity.LearnerIDParam
	if err := h.validator.ParseAndValidateParams(ctx, &params); err != nil {
		return response.NewFailed(domain.EXERCISE_LIST_SUBMISSIONS_FAILED, err, h.logger).Send(ctx)
	}

	exercises, err := h.usecase.ListSubmissions(ctx.UserContext(), params.ID)
	if err != nil {
		return h.fail(ctx, domain.EXERCISE_LIST_SUBMISSIONS_FAILED, err)
	}

	return response.NewSuccess(domain.EXERCISE_LIST_SUBMISSIONS_SUCCESS, exercises, fiber.Map{"total": len(exercises)}).Send(ctx)
}

// GET /learners/:id/stats
func (h *exerciseHandler) GetStats(ctx *fiber.Ctx) error {
	var params entity.LearnerIDParam
	if err := h.validator.ParseAndValidateParams(ctx, &params); err != nil {
		return response.NewFailed(domain.EXERCISE_STATS_FAILED, err, h.logger).Send(ctx)
	}

	report, err := h.usecase.GetStats(ctx.UserContext(), params.ID)
	if err != nil {
		return h.fail(ctx, domain.EXERCISE_STATS_FAILED, err)
	}

	return response.NewSuccess(domain.EXERCISE_STATS_SUCCESS, report, nil).Send(ctx)
}

// fail maps usecase errors to a status code.
func (h *exerciseHandler) fail(ctx *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrExerciseNotFound):
		return response.NewFailed(domain.EXERCISE_NOT_FOUND, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
	case errors.Is(err, usecase.ErrLearnerNotFound):
		return response.NewFailed(domain.LEARNER_NOT_FOUND, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
	case errors.Is(err, usecase.ErrAlreadySubmitted):
		return response.NewFailed(domain.EXERCISE_ALREADY_SUBMITTED, fiber.NewError(fiber.StatusForbidden, err.Error()), h.logger).Send(ctx)
	case errors.Is(err, usecase.ErrNotOwner):
		return response.NewFailed(domain.EXERCISE_NOT_OWNER, fiber.NewError(fiber.StatusForbidden, err.Error()), h.logger).Send(ctx)
	case errors.Is(err, imagecheck.ErrEmptyImage),
		errors.Is(err, imagecheck.ErrImageTooLarge),
		errors.Is(err, imagecheck.ErrUnsupportedImage),
		errors.Is(err, imagecheck.ErrCorruptImage):
		return response.NewFailed(domain.IMAGE_INVALID, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	default:
		return response.NewFailed(msg, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}
}
