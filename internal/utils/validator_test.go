package utils

import (
	"CulinaShare-Backend/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecipe() domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Title:        "Pancakes",
		PrepTime:     10,
		CookTime:     20,
		Servings:     4,
		Difficulty:   domain.DifficultyEasy,
		DietaryTags:  []string{"vegetarian"},
		Ingredients:  []domain.CreateIngredientRequest{{Name: "Flour", Quantity: "200g"}},
		Instructions: []domain.CreateInstructionRequest{{StepNumber: 1, Description: "Mix"}},
	}
}

func TestValidateRecipe(t *testing.T) {
	assert.NoError(t, ValidateStruct(validRecipe()))

	tests := []struct {
		name   string
		mutate func(*domain.CreateRecipeRequest)
	}{
		{"unknown difficulty", func(r *domain.CreateRecipeRequest) { r.Difficulty = "impossible" }},
		{"unknown dietary tag", func(r *domain.CreateRecipeRequest) { r.DietaryTags = []string{"carnivore"} }},
		{"duplicate dietary tag", func(r *domain.CreateRecipeRequest) { r.DietaryTags = []string{"vegan", "vegan"} }},
		{"too many tags", func(r *domain.CreateRecipeRequest) {
			r.DietaryTags = append([]string{}, domain.DietaryTags[:11]...)
		}},
		{"negative prep time", func(r *domain.CreateRecipeRequest) { r.PrepTime = -1 }},
		{"zero servings", func(r *domain.CreateRecipeRequest) { r.Servings = 0 }},
		{"no ingredients", func(r *domain.CreateRecipeRequest) { r.Ingredients = nil }},
		{"empty instruction", func(r *domain.CreateRecipeRequest) { r.Instructions[0].Description = "" }},
		{"duplicate order index", func(r *domain.CreateRecipeRequest) {
			r.Ingredients = append(r.Ingredients, domain.CreateIngredientRequest{Name: "Milk", Quantity: "1 cup"})
		}},
		{"duplicate step number", func(r *domain.CreateRecipeRequest) {
			r.Instructions = append(r.Instructions, domain.CreateInstructionRequest{StepNumber: 1, Description: "Fry"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRecipe()
			tt.mutate(&req)
			err := ValidateStruct(req)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}

func TestValidateReviewRating(t *testing.T) {
	id := "7f1c2a43-4c1e-4f9b-9d8e-2f5a7b6c8d9e"
	assert.NoError(t, ValidateStruct(domain.CreateReviewRequest{RecipeID: id, Rating: 5}))
	assert.Error(t, ValidateStruct(domain.CreateReviewRequest{RecipeID: id, Rating: 6}))
	assert.Error(t, ValidateStruct(domain.CreateReviewRequest{RecipeID: id, Rating: 0}))
}
