package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Description   string    `gorm:"size:1000" json:"description,omitempty"`
	ImageURL      string    `gorm:"size:512" json:"image_url,omitempty"`
	PrepTime      int       `gorm:"not null;default:0" json:"prep_time"`
	CookTime      int       `gorm:"not null;default:0" json:"cook_time"`
	TotalTime     int       `gorm:"not null;default:0" json:"total_time"`
	Servings      int       `gorm:"not null;default:1" json:"servings"`
	Cuisine       string    `gorm:"size:50;index" json:"cuisine,omitempty"`
	Difficulty    string    `gorm:"size:10;not null" json:"difficulty"`
	IsPublished   bool      `gorm:"not null;default:false;index" json:"is_published"`
	IsFeatured    bool      `gorm:"not null;default:false" json:"is_featured"`
	ViewCount     int64     `gorm:"not null;default:0" json:"view_count"`
	LikeCount     int64     `gorm:"not null;default:0" json:"like_count"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings  int64     `gorm:"not null;default:0" json:"total_ratings"`

	User         *User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	DietaryTags  []RecipeDietaryTag `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients  []Ingredient       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Instructions []Instruction      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions,omitempty"`
	Reviews      []Review           `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Timestamp
}

func (Recipe) TableName() string {
	return "recipes"
}

// TagNames flattens the dietary tag rows into their names.
func (r *Recipe) TagNames() []string {
	tags := make([]string, 0, len(r.DietaryTags))
	for _, t := range r.DietaryTags {
		tags = append(tags, t.Tag)
	}
	return tags
}

// VisibleTo reports whether userID may see the recipe. Drafts are only
// visible to their owner; userID may be empty for anonymous callers.
func (r *Recipe) VisibleTo(userID string) bool {
	return r.IsPublished || (userID != "" && r.UserID.String() == userID)
}

type RecipeDietaryTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	Tag      string    `gorm:"size:20;not null;uniqueIndex:idx_recipe_tag;index" json:"tag"`
}

func (RecipeDietaryTag) TableName() string {
	return "recipe_dietary_tags"
}

type RecipeLike struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_recipe;index" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}

type RecipeSave struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_save_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_save_user_recipe;index" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (RecipeSave) TableName() string {
	return "recipe_saves"
}
