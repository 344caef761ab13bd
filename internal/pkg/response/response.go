package response

import (
	"errors"

	"github.com/evandrarf/tulis-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
	Meta       any    `json:"meta,omitempty"`
}

func NewInternalServerError() *Response {
	return &Response{
		Success:    false,
		Message:    "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
}

// NewFailed builds an error envelope. The status comes from a *fiber.Error,
// validation errors become 400 and anything else is a 500, which is logged.
// Details of a 500 are never sent to the client.
func NewFailed(msg string, err error, logger *logrus.Logger) *Response {
	res := &Response{
		Success:    false,
		Message:    msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	var fiberErr *fiber.Error
	var fieldsErr *validate.FieldsError
	switch {
	case errors.As(err, &fiberErr):
		res.StatusCode = fiberErr.Code
		if fiberErr.Message != "" && fiberErr.Code < fiber.StatusInternalServerError {
			res.Error = fiberErr.Message
		}
	case errors.As(err, &fieldsErr):
		res.StatusCode = fiber.StatusBadRequest
		res.Error = fieldsErr.Fields
	}

	if logger != nil && res.StatusCode >= fiber.StatusInternalServerError {
		logger.WithError(err).WithField("status", res.StatusCode).Error(msg)
	}

	return res
}

func NewSuccess(msg string, data any, meta any) *Response {
	return &Response{
		Success:    true,
		Message:    msg,
		StatusCode: fiber.StatusOK,
		Data:       data,
		Meta:       meta,
	}
}

func NewCreated(msg string, data any) *Response {
	res := NewSuccess(msg, data, nil)
	res.StatusCode = fiber.StatusCreated
	return res
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r)
}
