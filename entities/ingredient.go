package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Quantity   string    `gorm:"size:50;not null" json:"quantity"`
	Unit       string    `gorm:"size:20" json:"unit,omitempty"`
	Notes      string    `gorm:"size:200" json:"notes,omitempty"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`

	Timestamp
}

func (Ingredient) TableName() string {
	return "ingredients"
}

type Instruction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StepNumber   int       `gorm:"not null" json:"step_number"`
	Description  string    `gorm:"size:500;not null" json:"description"`
	ImageURL     string    `gorm:"size:512" json:"image_url,omitempty"`
	TimeEstimate *int      `json:"time_estimate,omitempty"`

	Timestamp
}

func (Instruction) TableName() string {
	return "instructions"
}
