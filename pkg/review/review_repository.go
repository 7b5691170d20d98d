package review

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		GetReviewByID(ctx context.Context, id string) (*entities.Review, error)
		UpdateReview(ctx context.Context, id string, fields map[string]interface{}) (*entities.Review, error)
		DeleteReview(ctx context.Context, id string) error
		GetByRecipeID(ctx context.Context, recipeID string, limit, offset int) ([]entities.Review, error)
		GetByUserID(ctx context.Context, userID string, limit, offset int) ([]entities.Review, error)
		GetByUserAndRecipe(ctx context.Context, userID, recipeID string) (*entities.Review, error)
		GetAverageRating(ctx context.Context, recipeID string) (float64, error)
		GetRatingDistribution(ctx context.Context, recipeID string) (map[int]int64, error)
		HasUserReviewed(ctx context.Context, userID, recipeID string) (bool, error)
		CountByRecipeID(ctx context.Context, recipeID string) (int64, error)
		CountByUserID(ctx context.Context, userID string) (int64, error)
	}

	reviewRepository struct {
		*database.Repository[entities.Review]
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{
		Repository: database.NewRepository[entities.Review](db, "reviews"),
		db:         db,
	}
}

// CreateReview inserts an unverified review and refreshes the recipe's rating
// aggregates in the same transaction. A second review for the same user and
// recipe fails with domain.ErrReviewAlreadyExists.
func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) (err error) {
	defer database.Track(&err, r.Collection(), "create_review", time.Now())

	review.IsVerified = false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return refreshRecipeRating(tx, review.RecipeID.String())
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrReviewAlreadyExists
	}
	return err
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id string) (*entities.Review, error) {
	return r.FindByID(ctx, id)
}

func (r *reviewRepository) UpdateReview(ctx context.Context, id string, fields map[string]interface{}) (_ *entities.Review, err error) {
	defer database.Track(&err, r.Collection(), "update_review", time.Now())

	var updated *entities.Review
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if updated, err = r.WithTx(tx).Update(ctx, id, fields); err != nil {
			return err
		}
		return refreshRecipeRating(tx, updated.RecipeID.String())
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id string) (err error) {
	defer database.Track(&err, r.Collection(), "delete_review", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review entities.Review
		if err := tx.Where("id = ?", id).Take(&review).Error; err != nil {
			return err
		}
		if err := r.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return refreshRecipeRating(tx, review.RecipeID.String())
	})
}

// refreshRecipeRating recomputes average_rating and total_ratings from the
// recipe's reviews.
func refreshRecipeRating(tx *gorm.DB, recipeID string) error {
	var agg struct {
		Average float64
		Total   int64
	}
	if err := tx.Model(&entities.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("recipe_id = ?", recipeID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumns(map[string]interface{}{
			"average_rating": agg.Average,
			"total_ratings":  agg.Total,
		}).Error
}

func (r *reviewRepository) GetByRecipeID(ctx context.Context, recipeID string, limit, offset int) (_ []entities.Review, err error) {
	defer database.Track(&err, r.Collection(), "get_by_recipe", time.Now())

	var reviews []entities.Review
	if err := r.page(ctx, limit, offset).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) (_ []entities.Review, err error) {
	defer database.Track(&err, r.Collection(), "get_by_user", time.Now())

	var reviews []entities.Review
	if err := r.page(ctx, limit, offset).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// page orders newest first and applies a clamped window.
func (r *reviewRepository) page(ctx context.Context, limit, offset int) *gorm.DB {
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Offset(offset)
}

// GetByUserAndRecipe returns nil when the user has not reviewed the recipe.
func (r *reviewRepository) GetByUserAndRecipe(ctx context.Context, userID, recipeID string) (_ *entities.Review, err error) {
	defer database.Track(&err, r.Collection(), "get_by_user_and_recipe", time.Now())

	var review entities.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Take(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetAverageRating is 0 for a recipe without reviews.
func (r *reviewRepository) GetAverageRating(ctx context.Context, recipeID string) (_ float64, err error) {
	defer database.Track(&err, r.Collection(), "average_rating", time.Now())

	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&entities.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("recipe_id = ?", recipeID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

// GetRatingDistribution always has keys 1 through 5.
func (r *reviewRepository) GetRatingDistribution(ctx context.Context, recipeID string) (_ map[int]int64, err error) {
	defer database.Track(&err, r.Collection(), "rating_distribution", time.Now())

	var rows []struct {
		Rating int
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	dist := make(map[int]int64, domain.MaxRating)
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		dist[rating] = 0
	}
	for _, row := range rows {
		if _, ok := dist[row.Rating]; ok {
			dist[row.Rating] = row.Count
		}
	}
	return dist, nil
}

func (r *reviewRepository) HasUserReviewed(ctx context.Context, userID, recipeID string) (bool, error) {
	review, err := r.GetByUserAndRecipe(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	return review != nil, nil
}

func (r *reviewRepository) CountByRecipeID(ctx context.Context, recipeID string) (int64, error) {
	return r.Count(ctx, database.Filters{"recipe_id": recipeID})
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	return r.Count(ctx, database.Filters{"user_id": userID})
}
