package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/api/presenters"
	"CulinaShare-Backend/internal/middleware"
	"CulinaShare-Backend/pkg/recipe"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const defaultListingLimit = 10

type (
	RecipeHandler interface {
		SearchRecipes(c *fiber.Ctx) error
		GetFeaturedRecipes(c *fiber.Ctx) error
		GetPopularRecipes(c *fiber.Ctx) error
		GetRecentRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		ToggleSave(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		ReorderIngredients(c *fiber.Ctx) error
		ReorderInstructions(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		UpdateInstruction(c *fiber.Ctx) error
		GetSavedRecipes(c *fiber.Ctx) error
		GetRecipesByUser(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	page, limit := pagination(c)
	req := domain.RecipeSearchRequest{
		Query:       c.Query("q", c.Query("query")),
		Cuisine:     c.Query("cuisine"),
		Difficulty:  c.Query("difficulty"),
		DietaryTags: listQuery(c, "dietary_tags"),
		UserID:      c.Query("user_id"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        page,
		Limit:       limit,
	}

	var err error
	if req.PrepTimeMax, err = optionalInt(c, "prep_time_max"); err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}
	if req.CookTimeMax, err = optionalInt(c, "cook_time_max"); err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}
	if req.MinRating, err = optionalFloat(c, "min_rating"); err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}

	res, err := h.recipeService.SearchRecipes(c.Context(), req)
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func listingLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultListingLimit)))
	if err != nil || limit < 1 {
		return defaultListingLimit
	}
	return limit
}

func (h *recipeHandler) GetFeaturedRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetFeaturedRecipes(c.Context(), listingLimit(c))
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetPopularRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetPopularRecipes(c.Context(), listingLimit(c))
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecentRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecentRecipes(c.Context(), listingLimit(c))
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return handleError(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return handleError(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), userID); err != nil {
		return handleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ToggleLike(c.Context(), c.Params("id"), userID)
	if err != nil {
		return handleError(c, domain.MessageFailedToggleLike, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLike)
}

func (h *recipeHandler) ToggleSave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ToggleSave(c.Context(), c.Params("id"), userID)
	if err != nil {
		return handleError(c, domain.MessageFailedToggleSave, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleSave)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("image")
	if err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.UploadRecipeImage(c.Context(), c.Params("id"), userID, file)
	if err != nil {
		return handleError(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) ReorderIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ReorderRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.ReorderIngredients(c.Context(), c.Params("id"), userID, *req)
	if err != nil {
		return handleError(c, domain.MessageFailedReorder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessReorder)
}

func (h *recipeHandler) ReorderInstructions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ReorderRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.ReorderInstructions(c.Context(), c.Params("id"), userID, *req)
	if err != nil {
		return handleError(c, domain.MessageFailedReorder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessReorder)
}

func (h *recipeHandler) UpdateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.UpdateIngredient(c.Context(), c.Params("id"), c.Params("itemId"), userID, *req)
	if err != nil {
		return handleError(c, domain.MessageFailedUpdateStep, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStep)
}

func (h *recipeHandler) UpdateInstruction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateInstructionRequest)

	if err := c.BodyParser(req); err != nil {
		return bodyError(c, err)
	}

	res, err := h.recipeService.UpdateInstruction(c.Context(), c.Params("id"), c.Params("itemId"), userID, *req)
	if err != nil {
		return handleError(c, domain.MessageFailedUpdateStep, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStep)
}

func (h *recipeHandler) GetSavedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	res, err := h.recipeService.GetSavedRecipes(c.Context(), userID, page, limit)
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipesByUser(c *fiber.Ctx) error {
	page, limit := pagination(c)

	res, err := h.recipeService.GetRecipesByUser(c.Context(), c.Params("id"), middleware.UserID(c), page, limit)
	if err != nil {
		return handleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}
