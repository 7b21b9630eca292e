package handler

import (
	"errors"

	"workly/internal/delivery/http/middleware"
	"workly/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func authedUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

// asValidationAppError converts a usecase ValidationError into a 400 whose
// data lists every violation.
func asValidationAppError(err error) (*middleware.AppError, bool) {
	var ve *usecase.ValidationError
	if !errors.As(err, &ve) {
		return nil, false
	}
	return middleware.NewAppError(
		fiber.StatusBadRequest,
		"Validation failed",
		map[string]any{"violations": ve.Violations},
		err,
	), true
}
