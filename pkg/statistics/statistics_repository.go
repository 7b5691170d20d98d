package statistics

import (
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	StatisticsRepository interface {
		CountPublishedRecipes(ctx context.Context) (int64, error)
		CountActiveUsers(ctx context.Context) (int64, error)
		ListCuisines(ctx context.Context) ([]string, error)
	}

	statisticsRepository struct {
		db *gorm.DB
	}
)

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) CountPublishedRecipes(ctx context.Context) (_ int64, err error) {
	defer database.Track(&err, "recipes", "count_published", time.Now())

	var count int64
	err = r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("is_published = ?", true).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountActiveUsers(ctx context.Context) (_ int64, err error) {
	defer database.Track(&err, "users", "count_active", time.Now())

	var count int64
	err = r.db.WithContext(ctx).Model(&entities.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ListCuisines returns the distinct non-empty cuisines of published recipes.
// Values are compared exactly, so "Thai" and "thai" are two cuisines.
func (r *statisticsRepository) ListCuisines(ctx context.Context) (_ []string, err error) {
	defer database.Track(&err, "recipes", "list_cuisines", time.Now())

	var cuisines []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("is_published = ? AND cuisine IS NOT NULL AND cuisine <> ''", true).
		Distinct().
		Pluck("cuisine", &cuisines).Error; err != nil {
		return nil, err
	}
	return cuisines, nil
}
