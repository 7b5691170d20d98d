package testutil

import (
	"CulinaShare-Backend/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser inserts an active user with the given username.
func CreateUser(t testing.TB, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		Email:    username + "@example.com",
		Username: username,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// RecipeOption mutates a fixture recipe before it is inserted.
type RecipeOption func(*entities.Recipe)

func Published() RecipeOption {
	return func(r *entities.Recipe) { r.IsPublished = true }
}

func Featured() RecipeOption {
	return func(r *entities.Recipe) { r.IsFeatured = true }
}

func WithCuisine(cuisine string) RecipeOption {
	return func(r *entities.Recipe) { r.Cuisine = cuisine }
}

func WithTags(tags ...string) RecipeOption {
	return func(r *entities.Recipe) {
		for _, tag := range tags {
			r.DietaryTags = append(r.DietaryTags, entities.RecipeDietaryTag{Tag: tag})
		}
	}
}

func WithRating(avg float64) RecipeOption {
	return func(r *entities.Recipe) { r.AverageRating = avg }
}

func WithViews(views int64) RecipeOption {
	return func(r *entities.Recipe) { r.ViewCount = views }
}

func WithTimes(prep, cook int) RecipeOption {
	return func(r *entities.Recipe) {
		r.PrepTime = prep
		r.CookTime = cook
		r.TotalTime = prep + cook
	}
}

func WithCreatedAt(at time.Time) RecipeOption {
	return func(r *entities.Recipe) { r.CreatedAt = at }
}

// CreateRecipe inserts a recipe owned by ownerID.
func CreateRecipe(t testing.TB, db *gorm.DB, ownerID uuid.UUID, title string, opts ...RecipeOption) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		UserID:     ownerID,
		Title:      title,
		Servings:   2,
		Difficulty: "easy",
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe %s: %v", title, err)
	}
	return recipe
}

// CreateReview inserts a review without touching the recipe aggregates.
func CreateReview(t testing.TB, db *gorm.DB, userID, recipeID uuid.UUID, rating int) *entities.Review {
	t.Helper()
	review := &entities.Review{UserID: userID, RecipeID: recipeID, Rating: rating}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}

// CreateIngredients inserts ingredients for recipeID in the given order.
func CreateIngredients(t testing.TB, db *gorm.DB, recipeID uuid.UUID, ingredients ...entities.Ingredient) []entities.Ingredient {
	t.Helper()
	for i := range ingredients {
		ingredients[i].RecipeID = recipeID
	}
	if err := db.Create(&ingredients).Error; err != nil {
		t.Fatalf("create ingredients: %v", err)
	}
	return ingredients
}

// CreateInstructions inserts steps for recipeID in the given order.
func CreateInstructions(t testing.TB, db *gorm.DB, recipeID uuid.UUID, steps ...entities.Instruction) []entities.Instruction {
	t.Helper()
	for i := range steps {
		steps[i].RecipeID = recipeID
	}
	if err := db.Create(&steps).Error; err != nil {
		t.Fatalf("create instructions: %v", err)
	}
	return steps
}
