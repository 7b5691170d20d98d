package ingredient_test

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/testutil"
	"CulinaShare-Backend/pkg/ingredient"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *entities.Recipe, *entities.Recipe) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "chef")
	return db, testutil.CreateRecipe(t, db, owner.ID, "soup"), testutil.CreateRecipe(t, db, owner.ID, "salad")
}

func TestIngredientsOrderedByIndex(t *testing.T) {
	db, soup, _ := setup(t)
	repo := ingredient.NewIngredientRepository(db)
	ctx := context.Background()

	testutil.CreateIngredients(t, db, soup.ID,
		entities.Ingredient{Name: "salt", Quantity: "1 tsp", OrderIndex: 2},
		entities.Ingredient{Name: "water", Quantity: "1 l", OrderIndex: 0},
		entities.Ingredient{Name: "onion", Quantity: "1", OrderIndex: 1},
	)

	got, err := repo.GetByRecipeID(ctx, soup.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"water", "onion", "salt"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, soup.ID, got[0].RecipeID)
}

func TestReorderIngredients(t *testing.T) {
	db, soup, salad := setup(t)
	repo := ingredient.NewIngredientRepository(db)
	ctx := context.Background()

	testutil.CreateIngredients(t, db, soup.ID,
		entities.Ingredient{Name: "a", Quantity: "1", OrderIndex: 0},
		entities.Ingredient{Name: "b", Quantity: "1", OrderIndex: 1},
		entities.Ingredient{Name: "c", Quantity: "1", OrderIndex: 2},
	)
	testutil.CreateIngredients(t, db, salad.ID, entities.Ingredient{Name: "lettuce", Quantity: "1", OrderIndex: 0})

	current, err := repo.GetByRecipeID(ctx, soup.ID.String())
	require.NoError(t, err)
	ids := []string{current[2].ID.String(), current[0].ID.String(), current[1].ID.String()}

	require.NoError(t, repo.ReorderIngredients(ctx, soup.ID.String(), ids))

	reordered, err := repo.GetByRecipeID(ctx, soup.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, []string{reordered[0].Name, reordered[1].Name, reordered[2].Name})
	for i, ing := range reordered {
		assert.Equal(t, i, ing.OrderIndex)
	}

	saladItems, err := repo.GetByRecipeID(ctx, salad.ID.String())
	require.NoError(t, err)
	require.Len(t, saladItems, 1)

	// an id from another recipe is rejected
	bad := []string{saladItems[0].ID.String(), ids[1], ids[2]}
	err = repo.ReorderIngredients(ctx, soup.ID.String(), bad)
	assert.True(t, errors.Is(err, domain.ErrInvalidReorder))

	err = repo.ReorderIngredients(ctx, soup.ID.String(), ids[:2])
	assert.True(t, errors.Is(err, domain.ErrInvalidReorder))
}

func TestGetAndUpdateIngredient(t *testing.T) {
	db, soup, _ := setup(t)
	repo := ingredient.NewIngredientRepository(db)
	ctx := context.Background()

	items := testutil.CreateIngredients(t, db, soup.ID, entities.Ingredient{Name: "salt", Quantity: "1 tsp"})

	found, err := repo.GetIngredient(ctx, items[0].ID.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, soup.ID, found.RecipeID)

	missing, err := repo.GetIngredient(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err := repo.UpdateIngredient(ctx, items[0].ID.String(), map[string]interface{}{"quantity": "2 tsp"})
	require.NoError(t, err)
	assert.Equal(t, "2 tsp", updated.Quantity)
	assert.Equal(t, "salt", updated.Name)

	_, err = repo.UpdateIngredient(ctx, uuid.NewString(), map[string]interface{}{"quantity": "3"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReorderInstructions(t *testing.T) {
	db, soup, _ := setup(t)
	repo := ingredient.NewInstructionRepository(db)
	ctx := context.Background()

	testutil.CreateInstructions(t, db, soup.ID,
		entities.Instruction{StepNumber: 1, Description: "boil"},
		entities.Instruction{StepNumber: 2, Description: "chop"},
	)
	steps, err := repo.GetByRecipeID(ctx, soup.ID.String())
	require.NoError(t, err)
	require.Equal(t, "boil", steps[0].Description)

	require.NoError(t, repo.ReorderInstructions(ctx, soup.ID.String(), []string{steps[1].ID.String(), steps[0].ID.String()}))

	steps, err = repo.GetByRecipeID(ctx, soup.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "chop", steps[0].Description)
	assert.Equal(t, 1, steps[0].StepNumber)
	assert.Equal(t, 2, steps[1].StepNumber)
}

func TestUpdateInstruction(t *testing.T) {
	db, soup, _ := setup(t)
	repo := ingredient.NewInstructionRepository(db)
	ctx := context.Background()

	steps := testutil.CreateInstructions(t, db, soup.ID, entities.Instruction{StepNumber: 1, Description: "boil"})

	minutes := 5
	updated, err := repo.UpdateInstruction(ctx, steps[0].ID.String(), map[string]interface{}{
		"description":   "boil hard",
		"time_estimate": minutes,
	})
	require.NoError(t, err)
	assert.Equal(t, "boil hard", updated.Description)
	require.NotNil(t, updated.TimeEstimate)
	assert.Equal(t, 5, *updated.TimeEstimate)
	assert.Equal(t, 1, updated.StepNumber)

	found, err := repo.GetInstruction(ctx, steps[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "boil hard", found.Description)
}
