package recipe

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/utils"
	"CulinaShare-Backend/internal/utils/storage"
	"CulinaShare-Backend/pkg/ingredient"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (*domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (*domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipe(ctx context.Context, recipeID string, userID string) (*domain.RecipeDetail, error)
		SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) (*domain.RecipeListResponse, error)
		GetFeaturedRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
		GetPopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
		GetRecentRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
		ToggleLike(ctx context.Context, recipeID string, userID string) (*domain.ToggleLikeResponse, error)
		ToggleSave(ctx context.Context, recipeID string, userID string) (*domain.ToggleSaveResponse, error)
		GetSavedRecipes(ctx context.Context, userID string, page, limit int) (*domain.RecipeListResponse, error)
		GetRecipesByUser(ctx context.Context, ownerID string, viewerID string, page, limit int) (*domain.RecipeListResponse, error)
		UploadRecipeImage(ctx context.Context, recipeID string, userID string, file *multipart.FileHeader) (*domain.Recipe, error)
		ReorderIngredients(ctx context.Context, recipeID string, userID string, req domain.ReorderRequest) ([]domain.Ingredient, error)
		ReorderInstructions(ctx context.Context, recipeID string, userID string, req domain.ReorderRequest) ([]domain.Instruction, error)
		UpdateIngredient(ctx context.Context, recipeID, ingredientID, userID string, req domain.UpdateIngredientRequest) (*domain.Ingredient, error)
		UpdateInstruction(ctx context.Context, recipeID, instructionID, userID string, req domain.UpdateInstructionRequest) (*domain.Instruction, error)
	}

	recipeService struct {
		recipeRepository      RecipeRepository
		ingredientRepository  ingredient.IngredientRepository
		instructionRepository ingredient.InstructionRepository
		s3                    storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	instructionRepository ingredient.InstructionRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:      recipeRepository,
		ingredientRepository:  ingredientRepository,
		instructionRepository: instructionRepository,
		s3:                    s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (*domain.RecipeDetail, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		UserID:      userUUID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Cuisine:     req.Cuisine,
		Difficulty:  req.Difficulty,
		DietaryTags: newTagRows(uuid.Nil, req.DietaryTags),
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
			Notes:      ing.Notes,
			OrderIndex: ing.OrderIndex,
		})
	}
	for _, step := range req.Instructions {
		recipe.Instructions = append(recipe.Instructions, entities.Instruction{
			StepNumber:   step.StepNumber,
			Description:  step.Description,
			ImageURL:     step.ImageURL,
			TimeEstimate: step.TimeEstimate,
		})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	details, err := s.recipeRepository.GetRecipeWithDetails(ctx, recipe.ID.String(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created recipe: %w", err)
	}
	if details == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return toRecipeDetail(details), nil
}

// ownedRecipe loads the recipe and checks that userID owns it.
func (s *recipeService) ownedRecipe(ctx context.Context, recipeID, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	if recipe.UserID != userUUID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (*domain.Recipe, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Servings != nil {
		fields["servings"] = *req.Servings
	}
	if req.Cuisine != nil {
		fields["cuisine"] = *req.Cuisine
	}
	if req.Difficulty != nil {
		fields["difficulty"] = *req.Difficulty
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	// total_time is only recomputed when both times are known, so a partial
	// change is completed from the stored row.
	if req.PrepTime != nil || req.CookTime != nil {
		prep, cook := existing.PrepTime, existing.CookTime
		if req.PrepTime != nil {
			prep = *req.PrepTime
		}
		if req.CookTime != nil {
			cook = *req.CookTime
		}
		fields["prep_time"] = prep
		fields["cook_time"] = cook
	}

	update := RecipeUpdate{Fields: fields}
	if req.DietaryTags != nil {
		update.DietaryTags = *req.DietaryTags
		update.ReplaceTags = true
	}

	updated, err := s.recipeRepository.UpdateRecipe(ctx, recipeID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrRecipeNotFound
	}

	result := updated.ToDomain()
	return &result, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// GetRecipe returns the full recipe and counts the view. Drafts are only
// visible to their owner.
func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, userID string) (*domain.RecipeDetail, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			return nil, domain.ErrParseUUID
		}
	}

	details, err := s.recipeRepository.GetRecipeWithDetails(ctx, recipeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if details == nil {
		return nil, domain.ErrRecipeNotFound
	}
	if !details.Recipe.VisibleTo(userID) {
		return nil, domain.ErrRecipeNotFound
	}

	if err := s.recipeRepository.IncrementViewCount(ctx, recipeID); err != nil {
		logging.Warn().Err(err).Str("recipe_id", recipeID).Msg("failed to increment view count")
	} else {
		details.Recipe.ViewCount++
	}

	return toRecipeDetail(details), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) (*domain.RecipeListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	recipes, total, err := s.recipeRepository.SearchRecipes(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	page := domain.PaginationRequest{Page: req.Page, Limit: req.Limit}.Normalize()
	return &domain.RecipeListResponse{
		Recipes:    entities.RecipesToDomain(recipes),
		Pagination: domain.NewPaginationResponse(page, total),
	}, nil
}

func (s *recipeService) GetFeaturedRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetFeaturedRecipes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured recipes: %w", err)
	}
	return entities.RecipesToDomain(recipes), nil
}

func (s *recipeService) GetPopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetPopularRecipes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular recipes: %w", err)
	}
	return entities.RecipesToDomain(recipes), nil
}

func (s *recipeService) GetRecentRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecentRecipes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent recipes: %w", err)
	}
	return entities.RecipesToDomain(recipes), nil
}

// visibleRecipe fails with ErrRecipeNotFound for drafts the caller does not
// own, so likes and saves cannot reveal or touch them.
func (s *recipeService) visibleRecipe(ctx context.Context, recipeID, userID string) error {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrParseUUID
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil || !recipe.VisibleTo(userID) {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (s *recipeService) ToggleLike(ctx context.Context, recipeID string, userID string) (*domain.ToggleLikeResponse, error) {
	if err := s.visibleRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	liked, err := s.recipeRepository.ToggleLike(ctx, recipeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}
	return &domain.ToggleLikeResponse{Liked: liked}, nil
}

func (s *recipeService) ToggleSave(ctx context.Context, recipeID string, userID string) (*domain.ToggleSaveResponse, error) {
	if err := s.visibleRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}
	saved, err := s.recipeRepository.ToggleSave(ctx, recipeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle save: %w", err)
	}
	return &domain.ToggleSaveResponse{Saved: saved}, nil
}

func (s *recipeService) GetSavedRecipes(ctx context.Context, userID string, page, limit int) (*domain.RecipeListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, total, err := s.recipeRepository.GetSavedRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved recipes: %w", err)
	}

	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()
	return &domain.RecipeListResponse{
		Recipes:    entities.RecipesToDomain(recipes),
		Pagination: domain.NewPaginationResponse(p, total),
	}, nil
}

// GetRecipesByUser includes drafts only when the owner is the one asking.
func (s *recipeService) GetRecipesByUser(ctx context.Context, ownerID string, viewerID string, page, limit int) (*domain.RecipeListResponse, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, total, err := s.recipeRepository.GetRecipesByUser(ctx, ownerID, ownerID == viewerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user recipes: %w", err)
	}

	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()
	return &domain.RecipeListResponse{
		Recipes:    entities.RecipesToDomain(recipes),
		Pagination: domain.NewPaginationResponse(p, total),
	}, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, userID string, file *multipart.FileHeader) (*domain.Recipe, error) {
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}

	objectKey, err := s.s3.UploadFile(ctx, fmt.Sprintf("recipe-%s-%s", recipeID, uuid.NewString()), file, "recipes", storage.AllowImage...)
	if err != nil {
		return nil, fmt.Errorf("failed to upload recipe image: %w", err)
	}

	updated, err := s.recipeRepository.UpdateRecipe(ctx, recipeID, RecipeUpdate{
		Fields: map[string]interface{}{"image_url": s.s3.GetPublicLinkKey(objectKey)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe image: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrRecipeNotFound
	}

	result := updated.ToDomain()
	return &result, nil
}

func (s *recipeService) ReorderIngredients(ctx context.Context, recipeID string, userID string, req domain.ReorderRequest) ([]domain.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}

	if err := s.ingredientRepository.ReorderIngredients(ctx, recipeID, req.IDs); err != nil {
		return nil, fmt.Errorf("failed to reorder ingredients: %w", err)
	}

	items, err := s.ingredientRepository.GetByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	result := make([]domain.Ingredient, 0, len(items))
	for i := range items {
		result = append(result, items[i].ToDomain())
	}
	return result, nil
}

func (s *recipeService) ReorderInstructions(ctx context.Context, recipeID string, userID string, req domain.ReorderRequest) ([]domain.Instruction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return nil, err
	}

	if err := s.instructionRepository.ReorderInstructions(ctx, recipeID, req.IDs); err != nil {
		return nil, fmt.Errorf("failed to reorder instructions: %w", err)
	}

	steps, err := s.instructionRepository.GetByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructions: %w", err)
	}
	result := make([]domain.Instruction, 0, len(steps))
	for i := range steps {
		result = append(result, steps[i].ToDomain())
	}
	return result, nil
}

// UpdateIngredient edits one ingredient of an owned recipe. An ingredient
// of another recipe is reported as missing.
func (s *recipeService) UpdateIngredient(ctx context.Context, recipeID, ingredientID, userID string, req domain.UpdateIngredientRequest) (*domain.Ingredient, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(ingredientID); err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.ingredientRepository.GetIngredient(ctx, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	if item == nil || item.RecipeID != recipe.ID {
		return nil, domain.ErrIngredientNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		fields["unit"] = *req.Unit
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) > 0 {
		if item, err = s.ingredientRepository.UpdateIngredient(ctx, ingredientID, fields); err != nil {
			return nil, fmt.Errorf("failed to update ingredient: %w", err)
		}
	}

	result := item.ToDomain()
	return &result, nil
}

func (s *recipeService) UpdateInstruction(ctx context.Context, recipeID, instructionID, userID string, req domain.UpdateInstructionRequest) (*domain.Instruction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(instructionID); err != nil {
		return nil, domain.ErrParseUUID
	}

	step, err := s.instructionRepository.GetInstruction(ctx, instructionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instruction: %w", err)
	}
	if step == nil || step.RecipeID != recipe.ID {
		return nil, domain.ErrInstructionNotFound
	}

	fields := map[string]interface{}{}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.TimeEstimate != nil {
		fields["time_estimate"] = *req.TimeEstimate
	}
	if len(fields) > 0 {
		if step, err = s.instructionRepository.UpdateInstruction(ctx, instructionID, fields); err != nil {
			return nil, fmt.Errorf("failed to update instruction: %w", err)
		}
	}

	result := step.ToDomain()
	return &result, nil
}

func toRecipeDetail(d *RecipeDetails) *domain.RecipeDetail {
	detail := &domain.RecipeDetail{
		Recipe:       d.Recipe.ToDomain(),
		Ingredients:  make([]domain.Ingredient, 0, len(d.Recipe.Ingredients)),
		Instructions: make([]domain.Instruction, 0, len(d.Recipe.Instructions)),
		Reviews:      entities.ReviewsToDomain(d.Recipe.Reviews),
		UserRating:   d.UserRating,
		UserLiked:    d.UserLiked,
		UserSaved:    d.UserSaved,
	}
	if d.Recipe.User != nil {
		detail.User = d.Recipe.User.Summary()
	}
	for i := range d.Recipe.Ingredients {
		detail.Ingredients = append(detail.Ingredients, d.Recipe.Ingredients[i].ToDomain())
	}
	for i := range d.Recipe.Instructions {
		detail.Instructions = append(detail.Instructions, d.Recipe.Instructions[i].ToDomain())
	}
	return detail
}
