package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/api/presenters"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/utils/storage"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errInternal = errors.New("internal server error")

// Sentinels are checked before BackendError because repository faults wrap
// them too.
var statusByError = []struct {
	status int
	errs   []error
}{
	{fiber.StatusBadRequest, []error{
		domain.ErrValidation,
		domain.ErrParseUUID,
		domain.ErrInvalidReorder,
		domain.ErrCannotFollowSelf,
		storage.ErrFileTypeNotAllowed,
		storage.ErrFileTooLarge,
	}},
	{fiber.StatusNotFound, []error{
		domain.ErrRecipeNotFound,
		domain.ErrReviewNotFound,
		domain.ErrIngredientNotFound,
		domain.ErrInstructionNotFound,
		domain.ErrUserNotFound,
		domain.ErrNotFound,
	}},
	{fiber.StatusForbidden, []error{
		domain.ErrUnauthorizedRecipeAccess,
		domain.ErrUnauthorizedReviewAccess,
		domain.ErrUserNotAllowed,
		domain.ErrUserInactive,
	}},
	{fiber.StatusConflict, []error{
		domain.ErrUsernameTaken,
		domain.ErrEmailTaken,
		domain.ErrReviewAlreadyExists,
	}},
	{fiber.StatusUnauthorized, []error{
		domain.ErrInvalidCredentials,
		domain.ErrTokenInvalid,
		domain.ErrTokenExpired,
		domain.ErrTokenNotFound,
	}},
}

func errorStatus(err error) int {
	for _, group := range statusByError {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return fiber.StatusInternalServerError
}

// handleError writes the error envelope. Server faults are logged and their
// details kept out of the response.
func handleError(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		event := logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path())
		var backend *domain.BackendError
		if errors.As(err, &backend) {
			event = event.Str("collection", backend.Collection).Str("op", backend.Op)
		}
		event.Msg(message)
		return presenters.ErrorResponse(c, status, message, errInternal)
	}
	return presenters.ErrorResponse(c, status, message, err)
}

func bodyError(c *fiber.Ctx, err error) error {
	return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
}

// pagination reads page and limit, falling back to the defaults on bad input.
func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = domain.DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultLimit
	}
	return page, limit
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, key)
	}
	return &v, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, key)
	}
	return &v, nil
}

// listQuery splits a comma separated query value, dropping empty items.
func listQuery(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
