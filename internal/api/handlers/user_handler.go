package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/api/presenters"
	"CulinaShare-Backend/pkg/user"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateMe(c *fiber.Ctx) error
		UploadProfilePicture(c *fiber.Ctx) error
		SearchUsers(c *fiber.Ctx) error
		CheckAvailability(c *fiber.Ctx) error
		GetUserProfile(c *fiber.Ctx) error
		GetUserStats(c *fiber.Ctx) error
		ToggleFollow(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
	}
)

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandler{
		userService: userService,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return handleError(c, domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return handleError(c, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	if err := h.userService.ForgotPassword(c.Context(), *req); err != nil {
		return handleError(c, domain.MessageFailedForgotPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return handleError(c, domain.MessageFailedResetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.GetUserProfile(c.Context(), userID)
	if err != nil {
		return handleError(c, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateUserRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.userService.UpdateUserProfile(c.Context(), userID, *req)
	if err != nil {
		return handleError(c, domain.MessageFailedUpdateUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

func (h *userHandler) UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("image")
	if err != nil {
		return bodyError(c, err)
	}

	res, err := h.userService.UploadProfilePicture(c.Context(), userID, file)
	if err != nil {
		return handleError(c, domain.MessageFailedUploadAvatar, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadAvatar)
}

func (h *userHandler) SearchUsers(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil {
		limit = 0
	}

	res, err := h.userService.SearchUsers(c.Context(), c.Query("q"), limit)
	if err != nil {
		return handleError(c, domain.MessageFailedSearchUsers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchUsers)
}

// CheckAvailability answers for ?username=, ?email= or both.
func (h *userHandler) CheckAvailability(c *fiber.Ctx) error {
	username, email := c.Query("username"), c.Query("email")
	if username == "" && email == "" {
		return handleError(c, domain.MessageFailedCheckAvailable,
			fmt.Errorf("%w: username or email is required", domain.ErrValidation))
	}

	res := domain.AvailabilityResponse{}
	if username != "" {
		available, err := h.userService.IsUsernameAvailable(c.Context(), username)
		if err != nil {
			return handleError(c, domain.MessageFailedCheckAvailable, err)
		}
		res.Username = &available
	}
	if email != "" {
		available, err := h.userService.IsEmailAvailable(c.Context(), email)
		if err != nil {
			return handleError(c, domain.MessageFailedCheckAvailable, err)
		}
		res.Email = &available
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckAvailable)
}

func (h *userHandler) GetUserProfile(c *fiber.Ctx) error {
	res, err := h.userService.GetUserProfile(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUserStats(c *fiber.Ctx) error {
	res, err := h.userService.GetUserStats(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) ToggleFollow(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.ToggleFollow(c.Context(), userID, c.Params("id"))
	if err != nil {
		return handleError(c, domain.MessageFailedToggleFollow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFollow)
}
