package ingredient

import (
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	InstructionRepository interface {
		GetByRecipeID(ctx context.Context, recipeID string) ([]entities.Instruction, error)
		GetInstruction(ctx context.Context, id string) (*entities.Instruction, error)
		UpdateInstruction(ctx context.Context, id string, fields map[string]interface{}) (*entities.Instruction, error)
		ReorderInstructions(ctx context.Context, recipeID string, ids []string) error
	}

	instructionRepository struct {
		*database.Repository[entities.Instruction]
		db *gorm.DB
	}
)

func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &instructionRepository{
		Repository: database.NewRepository[entities.Instruction](db, "instructions"),
		db:         db,
	}
}

func (r *instructionRepository) GetByRecipeID(ctx context.Context, recipeID string) (_ []entities.Instruction, err error) {
	defer database.Track(&err, r.Collection(), "get_by_recipe", time.Now())

	var instructions []entities.Instruction
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number asc").
		Find(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

func (r *instructionRepository) GetInstruction(ctx context.Context, id string) (*entities.Instruction, error) {
	return r.FindByID(ctx, id)
}

func (r *instructionRepository) UpdateInstruction(ctx context.Context, id string, fields map[string]interface{}) (*entities.Instruction, error) {
	return r.Update(ctx, id, fields)
}

// ReorderInstructions renumbers steps from 1 in the order given by ids.
func (r *instructionRepository) ReorderInstructions(ctx context.Context, recipeID string, ids []string) (err error) {
	defer database.Track(&err, r.Collection(), "reorder", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return reorder(tx, &entities.Instruction{}, recipeID, ids, "step_number", 1)
	})
}
