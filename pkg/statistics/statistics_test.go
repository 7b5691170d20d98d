package statistics

import (
	"CulinaShare-Backend/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppStatistics(t *testing.T) {
	db := testutil.NewTestDB(t)
	chef := testutil.CreateUser(t, db, "chef")
	testutil.CreateUser(t, db, "fan")
	gone := testutil.CreateUser(t, db, "gone")
	require.NoError(t, db.Model(gone).Update("is_active", false).Error)

	testutil.CreateRecipe(t, db, chef.ID, "a", testutil.Published(), testutil.WithCuisine("Italian"))
	testutil.CreateRecipe(t, db, chef.ID, "b", testutil.Published(), testutil.WithCuisine("Italian"))
	testutil.CreateRecipe(t, db, chef.ID, "c", testutil.Published(), testutil.WithCuisine("Thai"))
	testutil.CreateRecipe(t, db, chef.ID, "f", testutil.Published(), testutil.WithCuisine("thai"))
	testutil.CreateRecipe(t, db, chef.ID, "d", testutil.Published())
	testutil.CreateRecipe(t, db, chef.ID, "e", testutil.WithCuisine("French"))

	stats := NewStatisticsService(NewStatisticsRepository(db)).GetAppStatistics(context.Background())
	assert.Equal(t, int64(5), stats.TotalRecipes)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalCuisineTypes)
}

func TestStatisticsSwallowFaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewStatisticsService(NewStatisticsRepository(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	stats := svc.GetAppStatistics(context.Background())
	assert.Zero(t, stats.TotalRecipes)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalCuisineTypes)
}
