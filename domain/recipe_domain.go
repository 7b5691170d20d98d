package domain

import (
	"errors"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"

	MaxDietaryTags = 10
)

var (
	DifficultyLevels = []string{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

	DietaryTags = []string{
		"vegetarian",
		"vegan",
		"gluten-free",
		"dairy-free",
		"nut-free",
		"keto",
		"paleo",
		"low-carb",
		"high-protein",
		"low-sodium",
		"sugar-free",
		"halal",
		"kosher",
	}

	CuisineTypes = []string{
		"American", "Italian", "Mexican", "Chinese", "Japanese", "Indian", "French", "Thai",
		"Mediterranean", "Korean", "Vietnamese", "Greek", "Spanish", "German", "British", "Other",
	}

	RecipeSortFields = []string{
		"created_at", "updated_at", "title", "prep_time", "cook_time", "average_rating", "view_count", "like_count",
	}
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessToggleLike      = "recipe like toggled successfully"
	MessageSuccessToggleSave      = "recipe save toggled successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"
	MessageSuccessReorder         = "recipe steps reordered successfully"
	MessageSuccessUpdateStep      = "recipe step updated successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedToggleLike      = "failed to toggle like"
	MessageFailedToggleSave      = "failed to toggle save"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedReorder         = "failed to reorder recipe steps"
	MessageFailedUpdateStep      = "failed to update recipe step"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrInvalidReorder           = errors.New("reorder list does not match the recipe's items")
	ErrIngredientNotFound       = errors.New("ingredient not found")
	ErrInstructionNotFound      = errors.New("instruction not found")
)

type (
	CreateIngredientRequest struct {
		Name       string `json:"name" validate:"required,min=1,max=100"`
		Quantity   string `json:"quantity" validate:"required,min=1,max=50"`
		Unit       string `json:"unit,omitempty" validate:"omitempty,max=20"`
		Notes      string `json:"notes,omitempty" validate:"omitempty,max=200"`
		OrderIndex int    `json:"order_index" validate:"min=0"`
	}

	CreateInstructionRequest struct {
		StepNumber   int    `json:"step_number" validate:"required,min=1"`
		Description  string `json:"description" validate:"required,min=1,max=500"`
		ImageURL     string `json:"image_url,omitempty" validate:"omitempty,url"`
		TimeEstimate *int   `json:"time_estimate,omitempty" validate:"omitempty,min=0"`
	}

	CreateRecipeRequest struct {
		Title        string                     `json:"title" validate:"required,min=1,max=100"`
		Description  string                     `json:"description,omitempty" validate:"omitempty,max=1000"`
		PrepTime     int                        `json:"prep_time" validate:"min=0,max=1440"`
		CookTime     int                        `json:"cook_time" validate:"min=0,max=1440"`
		Servings     int                        `json:"servings" validate:"required,min=1,max=50"`
		Cuisine      string                     `json:"cuisine,omitempty" validate:"omitempty,max=50"`
		Difficulty   string                     `json:"difficulty" validate:"required,difficulty"`
		DietaryTags  []string                   `json:"dietary_tags" validate:"max=10,unique,dive,dietary_tag"`
		Ingredients  []CreateIngredientRequest  `json:"ingredients" validate:"required,min=1,max=50,unique=OrderIndex,dive"`
		Instructions []CreateInstructionRequest `json:"instructions" validate:"required,min=1,max=50,unique=StepNumber,dive"`
		ImageURL     string                     `json:"image_url,omitempty" validate:"omitempty,url"`
	}

	UpdateRecipeRequest struct {
		Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
		Description *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
		PrepTime    *int      `json:"prep_time,omitempty" validate:"omitempty,min=0,max=1440"`
		CookTime    *int      `json:"cook_time,omitempty" validate:"omitempty,min=0,max=1440"`
		Servings    *int      `json:"servings,omitempty" validate:"omitempty,min=1,max=50"`
		Cuisine     *string   `json:"cuisine,omitempty" validate:"omitempty,max=50"`
		Difficulty  *string   `json:"difficulty,omitempty" validate:"omitempty,difficulty"`
		DietaryTags *[]string `json:"dietary_tags,omitempty" validate:"omitempty,max=10,unique,dive,dietary_tag"`
		IsPublished *bool     `json:"is_published,omitempty"`
		ImageURL    *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	}

	RecipeSearchRequest struct {
		Query       string   `json:"query,omitempty" validate:"omitempty,max=100"`
		Cuisine     string   `json:"cuisine,omitempty" validate:"omitempty,max=50"`
		Difficulty  string   `json:"difficulty,omitempty" validate:"omitempty,difficulty"`
		DietaryTags []string `json:"dietary_tags,omitempty" validate:"omitempty,dive,dietary_tag"`
		PrepTimeMax *int     `json:"prep_time_max,omitempty" validate:"omitempty,min=0,max=1440"`
		CookTimeMax *int     `json:"cook_time_max,omitempty" validate:"omitempty,min=0,max=1440"`
		MinRating   *float64 `json:"min_rating,omitempty" validate:"omitempty,min=0,max=5"`
		UserID      string   `json:"user_id,omitempty" validate:"omitempty,uuid"`
		SortBy      string   `json:"sort_by,omitempty" validate:"omitempty,oneof=created_at updated_at title prep_time cook_time average_rating view_count like_count"`
		SortOrder   string   `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
		Page        int      `json:"page,omitempty" validate:"omitempty,min=1"`
		Limit       int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	}

	// Positions are changed through ReorderRequest only.
	UpdateIngredientRequest struct {
		Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
		Quantity *string `json:"quantity,omitempty" validate:"omitempty,min=1,max=50"`
		Unit     *string `json:"unit,omitempty" validate:"omitempty,max=20"`
		Notes    *string `json:"notes,omitempty" validate:"omitempty,max=200"`
	}

	UpdateInstructionRequest struct {
		Description  *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
		ImageURL     *string `json:"image_url,omitempty" validate:"omitempty,url"`
		TimeEstimate *int    `json:"time_estimate,omitempty" validate:"omitempty,min=0"`
	}

	ReorderRequest struct {
		IDs []string `json:"ids" validate:"required,min=1,unique,dive,uuid"`
	}

	UserSummary struct {
		ID                string `json:"id"`
		Username          string `json:"username"`
		ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	}

	Recipe struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		Title         string    `json:"title"`
		Description   string    `json:"description,omitempty"`
		ImageURL      string    `json:"image_url,omitempty"`
		PrepTime      int       `json:"prep_time"`
		CookTime      int       `json:"cook_time"`
		TotalTime     int       `json:"total_time"`
		Servings      int       `json:"servings"`
		Cuisine       string    `json:"cuisine,omitempty"`
		Difficulty    string    `json:"difficulty"`
		DietaryTags   []string  `json:"dietary_tags"`
		IsPublished   bool      `json:"is_published"`
		IsFeatured    bool      `json:"is_featured"`
		ViewCount     int64     `json:"view_count"`
		LikeCount     int64     `json:"like_count"`
		AverageRating float64   `json:"average_rating"`
		TotalRatings  int64     `json:"total_ratings"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	Ingredient struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Quantity   string `json:"quantity"`
		Unit       string `json:"unit,omitempty"`
		Notes      string `json:"notes,omitempty"`
		OrderIndex int    `json:"order_index"`
	}

	Instruction struct {
		ID           string `json:"id"`
		StepNumber   int    `json:"step_number"`
		Description  string `json:"description"`
		ImageURL     string `json:"image_url,omitempty"`
		TimeEstimate *int   `json:"time_estimate,omitempty"`
	}

	RecipeDetail struct {
		Recipe
		User         UserSummary   `json:"user"`
		Ingredients  []Ingredient  `json:"ingredients"`
		Instructions []Instruction `json:"instructions"`
		Reviews      []Review      `json:"reviews"`
		UserRating   *int          `json:"user_rating,omitempty"`
		UserLiked    bool          `json:"user_liked"`
		UserSaved    bool          `json:"user_saved"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe           `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}

	ToggleLikeResponse struct {
		Liked bool `json:"liked"`
	}

	ToggleSaveResponse struct {
		Saved bool `json:"saved"`
	}
)
