package response

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/evandrarf/tulis-be/internal/pkg/validate"
)

func TestNewFailed(t *testing.T) {
	res := NewFailed("gagal", fiber.NewError(fiber.StatusForbidden, "already submitted"), nil)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	assert.Equal(t, "already submitted", res.Error)
	assert.False(t, res.Success)

	res = NewFailed("gagal", validate.NewFieldsError(map[string]string{"id": "id must be a valid UUID"}), nil)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, map[string]string{"id": "id must be a valid UUID"}, res.Error)

	res = NewFailed("gagal", fiber.NewError(fiber.StatusInternalServerError, "pq: connection refused"), nil)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.Nil(t, res.Error)

	res = NewFailed("gagal", errors.New("boom"), nil)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
}

func TestNewCreated(t *testing.T) {
	res := NewCreated("ok", 1)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Data)
}
