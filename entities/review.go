package entities

import (
	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_recipe" json:"user_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_recipe;index" json:"recipe_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"size:1000" json:"comment,omitempty"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}

func (Review) TableName() string {
	return "reviews"
}
