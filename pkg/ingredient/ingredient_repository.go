package ingredient

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		GetByRecipeID(ctx context.Context, recipeID string) ([]entities.Ingredient, error)
		GetIngredient(ctx context.Context, id string) (*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, id string, fields map[string]interface{}) (*entities.Ingredient, error)
		ReorderIngredients(ctx context.Context, recipeID string, ids []string) error
	}

	ingredientRepository struct {
		*database.Repository[entities.Ingredient]
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{
		Repository: database.NewRepository[entities.Ingredient](db, "ingredients"),
		db:         db,
	}
}

func (r *ingredientRepository) GetByRecipeID(ctx context.Context, recipeID string) (_ []entities.Ingredient, err error) {
	defer database.Track(&err, r.Collection(), "get_by_recipe", time.Now())

	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("order_index asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredient(ctx context.Context, id string) (*entities.Ingredient, error) {
	return r.FindByID(ctx, id)
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, id string, fields map[string]interface{}) (*entities.Ingredient, error) {
	return r.Update(ctx, id, fields)
}

// ReorderIngredients sets order_index to each id's position in ids. ids must
// name exactly the recipe's ingredients.
func (r *ingredientRepository) ReorderIngredients(ctx context.Context, recipeID string, ids []string) (err error) {
	defer database.Track(&err, r.Collection(), "reorder", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reorder(tx, &entities.Ingredient{}, recipeID, ids, "order_index", 0)
	})
}

// reorder assigns column = base + position for every id. Rows belonging to
// other recipes are never touched.
func reorder(tx *gorm.DB, model interface{}, recipeID string, ids []string, column string, base int) error {
	var current []string
	if err := tx.Model(model).Where("recipe_id = ?", recipeID).Pluck("id", &current).Error; err != nil {
		return err
	}
	if len(current) != len(ids) {
		return domain.ErrInvalidReorder
	}
	owned := make(map[string]struct{}, len(current))
	for _, id := range current {
		owned[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			return domain.ErrInvalidReorder
		}
		delete(owned, id)
	}

	now := time.Now()
	for position, id := range ids {
		if err := tx.Model(model).
			Where("id = ? AND recipe_id = ?", id, recipeID).
			Updates(map[string]interface{}{column: base + position, "updated_at": now}).Error; err != nil {
			return err
		}
	}
	return nil
}
