package database_test

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/testutil"
	"CulinaShare-Backend/pkg/database"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecipes(t *testing.T, n int) (*database.Repository[entities.Recipe], uuid.UUID) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner")
	for i := 0; i < n; i++ {
		cuisine := "Italian"
		if i%2 == 1 {
			cuisine = "Thai"
		}
		testutil.CreateRecipe(t, db, owner.ID, fmt.Sprintf("recipe-%02d", i), testutil.WithCuisine(cuisine), testutil.WithViews(int64(i)))
	}
	return database.NewRepository[entities.Recipe](db, "recipes"), owner.ID
}

func TestFindByID(t *testing.T) {
	repo, ownerID := seedRecipes(t, 1)
	ctx := context.Background()

	rows, err := repo.FindMany(ctx, database.Filters{"user_id": ownerID}, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	found, err := repo.FindByID(ctx, rows[0].ID.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "recipe-00", found.Title)

	missing, err := repo.FindByID(ctx, uuid.NewString())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindManyPagination(t *testing.T) {
	repo, _ := seedRecipes(t, 25)
	ctx := context.Background()

	rows, err := repo.FindMany(ctx, nil,
		&database.Sort{Field: "view_count", Order: "asc"},
		&domain.PaginationRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for i, row := range rows {
		assert.Equal(t, int64(10+i), row.ViewCount)
	}

	last, err := repo.FindMany(ctx, nil,
		&database.Sort{Field: "view_count", Order: "asc"},
		&domain.PaginationRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestFindManySortDescending(t *testing.T) {
	repo, _ := seedRecipes(t, 5)

	rows, err := repo.FindMany(context.Background(), nil,
		&database.Sort{Field: "view_count", Order: "DESC"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, int64(4), rows[0].ViewCount)
	assert.Equal(t, int64(0), rows[4].ViewCount)
}

func TestFindManyFiltersAreANDed(t *testing.T) {
	repo, ownerID := seedRecipes(t, 10)
	ctx := context.Background()

	rows, err := repo.FindMany(ctx, database.Filters{
		"cuisine":    "Thai",
		"view_count": int64(3),
	}, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "recipe-03", rows[0].Title)

	var nilCuisine *string
	rows, err = repo.FindMany(ctx, database.Filters{
		"user_id": ownerID,
		"cuisine": nilCuisine,
	}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
}

func TestFindManyPaginated(t *testing.T) {
	repo, _ := seedRecipes(t, 25)

	result, err := repo.FindManyPaginated(context.Background(), nil, nil, &domain.PaginationRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, int64(3), result.Pagination.TotalPages)

	filtered, err := repo.FindManyPaginated(context.Background(), database.Filters{"cuisine": "Thai"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), filtered.Pagination.Total)
	assert.Equal(t, domain.DefaultLimit, filtered.Pagination.Limit)
	assert.Equal(t, int64(1), filtered.Pagination.TotalPages)
}

func TestUpdate(t *testing.T) {
	repo, ownerID := seedRecipes(t, 1)
	ctx := context.Background()

	rows, err := repo.FindMany(ctx, database.Filters{"user_id": ownerID}, nil, nil)
	require.NoError(t, err)
	original := rows[0]

	updated, err := repo.Update(ctx, original.ID.String(), map[string]interface{}{
		"title":      "renamed",
		"id":         uuid.New(),
		"created_at": original.CreatedAt.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(original.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(original.UpdatedAt))

	_, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"title": "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteAndExists(t *testing.T) {
	repo, ownerID := seedRecipes(t, 1)
	ctx := context.Background()

	rows, err := repo.FindMany(ctx, database.Filters{"user_id": ownerID}, nil, nil)
	require.NoError(t, err)
	id := rows[0].ID.String()

	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, id))

	exists, err = repo.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Delete(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "recipes", backendErr.Collection)
	assert.Equal(t, "delete", backendErr.Op)
}

func TestCountAndCreate(t *testing.T) {
	repo, ownerID := seedRecipes(t, 3)
	ctx := context.Background()

	recipe := &entities.Recipe{UserID: ownerID, Title: "fresh", Servings: 1, Difficulty: domain.DifficultyEasy}
	require.NoError(t, repo.Create(ctx, recipe))
	assert.NotEqual(t, uuid.Nil, recipe.ID)

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestBackendFaultIsWrapped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := database.NewRepository[entities.Recipe](db, "recipes")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.Count(context.Background(), nil)
	require.Error(t, err)
	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "count", backendErr.Op)
}
