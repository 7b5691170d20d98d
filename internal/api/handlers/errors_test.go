package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/utils/storage"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: title", domain.ErrValidation), fiber.StatusBadRequest},
		{"bad uuid", domain.ErrParseUUID, fiber.StatusBadRequest},
		{"file type", fmt.Errorf("failed to upload: %w", storage.ErrFileTypeNotAllowed), fiber.StatusBadRequest},
		{"recipe missing", fmt.Errorf("failed to get recipe: %w", domain.ErrRecipeNotFound), fiber.StatusNotFound},
		{"wrapped not found", &domain.BackendError{Collection: "recipes", Op: "update", Err: domain.ErrNotFound}, fiber.StatusNotFound},
		{"wrapped conflict", &domain.BackendError{Collection: "reviews", Op: "create", Err: domain.ErrReviewAlreadyExists}, fiber.StatusConflict},
		{"ingredient missing", domain.ErrIngredientNotFound, fiber.StatusNotFound},
		{"not owner", domain.ErrUnauthorizedReviewAccess, fiber.StatusForbidden},
		{"expired", domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{"fault", &domain.BackendError{Collection: "users", Op: "count", Err: errors.New("sql: database is closed")}, fiber.StatusInternalServerError},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
