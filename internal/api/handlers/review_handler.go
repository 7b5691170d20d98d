package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/api/presenters"
	"CulinaShare-Backend/internal/middleware"
	"CulinaShare-Backend/pkg/review"

	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		CreateReview(c *fiber.Ctx) error
		UpdateReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
		GetReviewsByRecipe(c *fiber.Ctx) error
		GetReviewsByUser(c *fiber.Ctx) error
		GetMyReviewForRecipe(c *fiber.Ctx) error
		GetRatingSummary(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
	}
)

func NewReviewHandler(reviewService review.ReviewService) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
	}
}

func (h *reviewHandler) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.reviewService.CreateReview(c.Context(), *req, userID)
	if err != nil {
		return handleError(c, domain.MessageFailedCreateReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReview)
}

func (h *reviewHandler) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.reviewService.UpdateReview(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return handleError(c, domain.MessageFailedUpdateReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.reviewService.DeleteReview(c.Context(), c.Params("id"), userID); err != nil {
		return handleError(c, domain.MessageFailedDeleteReview, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}

func (h *reviewHandler) GetReviewsByRecipe(c *fiber.Ctx) error {
	page, limit := pagination(c)

	res, err := h.reviewService.GetReviewsByRecipe(c.Context(), c.Params("id"), middleware.UserID(c), page, limit)
	if err != nil {
		return handleError(c, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReviews)
}

func (h *reviewHandler) GetReviewsByUser(c *fiber.Ctx) error {
	page, limit := pagination(c)

	res, err := h.reviewService.GetReviewsByUser(c.Context(), c.Params("id"), page, limit)
	if err != nil {
		return handleError(c, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReviews)
}

func (h *reviewHandler) GetMyReviewForRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.reviewService.GetUserReviewForRecipe(c.Context(), userID, c.Params("id"))
	if err != nil {
		return handleError(c, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReviews)
}

func (h *reviewHandler) GetRatingSummary(c *fiber.Ctx) error {
	res, err := h.reviewService.GetRatingSummary(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return handleError(c, domain.MessageFailedGetRating, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}
