package review

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/testutil"
	"CulinaShare-Backend/pkg/recipe"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    ReviewRepository
	service ReviewService
	owner   *entities.User
	recipe  *entities.Recipe
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "chef")
	repo := NewReviewRepository(db)
	return &fixture{
		db:      db,
		repo:    repo,
		service: NewReviewService(repo, recipe.NewRecipeRepository(db)),
		owner:   owner,
		recipe:  testutil.CreateRecipe(t, db, owner.ID, "Soup", testutil.Published()),
	}
}

func (f *fixture) reload(t *testing.T) entities.Recipe {
	var r entities.Recipe
	require.NoError(t, f.db.Where("id = ?", f.recipe.ID).Take(&r).Error)
	return r
}

func TestFirstFiveStarReview(t *testing.T) {
	f := newFixture(t)
	reviewer := testutil.CreateUser(t, f.db, "critic")
	ctx := context.Background()

	review, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RecipeID: f.recipe.ID.String(), Rating: 5}, reviewer.ID.String())
	require.NoError(t, err)
	assert.False(t, review.IsVerified)

	avg, err := f.service.GetAverageRating(ctx, f.recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	dist, err := f.service.GetRatingDistribution(ctx, f.recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 1}, dist)

	stored := f.reload(t)
	assert.Equal(t, 5.0, stored.AverageRating)
	assert.Equal(t, int64(1), stored.TotalRatings)
}

func TestAverageRatingWithoutReviews(t *testing.T) {
	f := newFixture(t)

	avg, err := f.repo.GetAverageRating(context.Background(), f.recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	dist, err := f.repo.GetRatingDistribution(context.Background(), f.recipe.ID.String())
	require.NoError(t, err)
	assert.Len(t, dist, 5)
	for rating := 1; rating <= 5; rating++ {
		assert.Equal(t, int64(0), dist[rating])
	}
}

func TestDistributionSumsToReviewCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ratings := []int{1, 3, 3, 4, 5, 5, 5}
	for i, rating := range ratings {
		user := testutil.CreateUser(t, f.db, "user"+string(rune('a'+i)))
		require.NoError(t, f.repo.CreateReview(ctx, &entities.Review{UserID: user.ID, RecipeID: f.recipe.ID, Rating: rating}))
	}

	summary, err := f.service.GetRatingSummary(ctx, f.recipe.ID.String(), "")
	require.NoError(t, err)

	var sum int64
	for _, n := range summary.Distribution {
		sum += n
	}
	count, err := f.repo.CountByRecipeID(ctx, f.recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, count, sum)
	assert.Equal(t, int64(len(ratings)), summary.TotalRatings)
	assert.Equal(t, int64(3), summary.Distribution[5])
	assert.Equal(t, int64(0), summary.Distribution[2])
	assert.InDelta(t, 26.0/7.0, summary.AverageRating, 1e-9)

	stored := f.reload(t)
	assert.InDelta(t, 26.0/7.0, stored.AverageRating, 1e-9)
	assert.Equal(t, int64(7), stored.TotalRatings)
}

func TestDuplicateReviewRejected(t *testing.T) {
	f := newFixture(t)
	reviewer := testutil.CreateUser(t, f.db, "critic")
	ctx := context.Background()
	req := domain.CreateReviewRequest{RecipeID: f.recipe.ID.String(), Rating: 4}

	_, err := f.service.CreateReview(ctx, req, reviewer.ID.String())
	require.NoError(t, err)

	_, err = f.service.CreateReview(ctx, req, reviewer.ID.String())
	assert.True(t, errors.Is(err, domain.ErrReviewAlreadyExists))

	// the storage layer rejects a duplicate that slipped past the pre-check
	err = f.repo.CreateReview(ctx, &entities.Review{UserID: reviewer.ID, RecipeID: f.recipe.ID, Rating: 2})
	assert.True(t, errors.Is(err, domain.ErrReviewAlreadyExists))

	assert.Equal(t, int64(1), f.reload(t).TotalRatings)
}

func TestCreateReviewForMissingRecipe(t *testing.T) {
	f := newFixture(t)
	reviewer := testutil.CreateUser(t, f.db, "critic")

	_, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: uuid.NewString(), Rating: 4}, reviewer.ID.String())
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))

	_, err = f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: f.recipe.ID.String(), Rating: 9}, reviewer.ID.String())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdateAndDeleteReviewOwnership(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author")
	intruder := testutil.CreateUser(t, f.db, "intruder")
	ctx := context.Background()

	created, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RecipeID: f.recipe.ID.String(), Rating: 2}, author.ID.String())
	require.NoError(t, err)

	rating := 4
	_, err = f.service.UpdateReview(ctx, created.ID, domain.UpdateReviewRequest{Rating: &rating}, intruder.ID.String())
	assert.True(t, errors.Is(err, domain.ErrUnauthorizedReviewAccess))
	assert.Equal(t, 2.0, f.reload(t).AverageRating)

	err = f.service.DeleteReview(ctx, created.ID, intruder.ID.String())
	assert.True(t, errors.Is(err, domain.ErrUnauthorizedReviewAccess))

	updated, err := f.service.UpdateReview(ctx, created.ID, domain.UpdateReviewRequest{Rating: &rating}, author.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, 4.0, f.reload(t).AverageRating)

	require.NoError(t, f.service.DeleteReview(ctx, created.ID, author.ID.String()))
	stored := f.reload(t)
	assert.Equal(t, 0.0, stored.AverageRating)
	assert.Equal(t, int64(0), stored.TotalRatings)

	err = f.service.DeleteReview(ctx, created.ID, author.ID.String())
	assert.True(t, errors.Is(err, domain.ErrReviewNotFound))
}

func TestGetByUserAndRecipe(t *testing.T) {
	f := newFixture(t)
	reviewer := testutil.CreateUser(t, f.db, "critic")
	ctx := context.Background()

	missing, err := f.repo.GetByUserAndRecipe(ctx, reviewer.ID.String(), f.recipe.ID.String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	reviewed, err := f.service.HasUserReviewed(ctx, reviewer.ID.String(), f.recipe.ID.String())
	require.NoError(t, err)
	assert.False(t, reviewed)

	_, err = f.service.GetUserReviewForRecipe(ctx, reviewer.ID.String(), f.recipe.ID.String())
	assert.True(t, errors.Is(err, domain.ErrReviewNotFound))

	testutil.CreateReview(t, f.db, reviewer.ID, f.recipe.ID, 3)

	reviewed, err = f.service.HasUserReviewed(ctx, reviewer.ID.String(), f.recipe.ID.String())
	require.NoError(t, err)
	assert.True(t, reviewed)

	_, err = f.service.GetUserReviewForRecipe(ctx, reviewer.ID.String(), "not-a-uuid")
	assert.True(t, errors.Is(err, domain.ErrParseUUID))
	_, err = f.service.GetAverageRating(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, domain.ErrParseUUID))
	_, err = f.service.GetRatingDistribution(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, domain.ErrParseUUID))
}

func TestDraftRecipeReviewsHiddenFromOthers(t *testing.T) {
	f := newFixture(t)
	stranger := testutil.CreateUser(t, f.db, "stranger")
	ctx := context.Background()
	draft := testutil.CreateRecipe(t, f.db, f.owner.ID, "Secret stew")
	testutil.CreateReview(t, f.db, f.owner.ID, draft.ID, 4)

	_, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RecipeID: draft.ID.String(), Rating: 1}, stranger.ID.String())
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))

	_, err = f.service.GetReviewsByRecipe(ctx, draft.ID.String(), stranger.ID.String(), 1, 10)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
	_, err = f.service.GetReviewsByRecipe(ctx, draft.ID.String(), "", 1, 10)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))

	_, err = f.service.GetRatingSummary(ctx, draft.ID.String(), stranger.ID.String())
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))

	count, err := f.repo.CountByRecipeID(ctx, draft.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	own, err := f.service.GetReviewsByRecipe(ctx, draft.ID.String(), f.owner.ID.String(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, own.Reviews, 1)

	summary, err := f.service.GetRatingSummary(ctx, draft.ID.String(), f.owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalRatings)
}

func TestListReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second := testutil.CreateRecipe(t, f.db, f.owner.ID, "Stew", testutil.Published())
	critic := testutil.CreateUser(t, f.db, "critic")
	for i := 0; i < 3; i++ {
		user := testutil.CreateUser(t, f.db, "eater"+string(rune('a'+i)))
		testutil.CreateReview(t, f.db, user.ID, f.recipe.ID, 3)
	}
	testutil.CreateReview(t, f.db, critic.ID, f.recipe.ID, 5)
	testutil.CreateReview(t, f.db, critic.ID, second.ID, 1)

	byRecipe, err := f.service.GetReviewsByRecipe(ctx, f.recipe.ID.String(), "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, byRecipe.Reviews, 2)
	assert.Equal(t, int64(4), byRecipe.Pagination.Total)
	assert.Equal(t, int64(2), byRecipe.Pagination.TotalPages)
	require.NotNil(t, byRecipe.Reviews[0].User)

	byUser, err := f.service.GetReviewsByUser(ctx, critic.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, byUser.Reviews, 2)
	for _, r := range byUser.Reviews {
		require.NotNil(t, r.Recipe)
		assert.Equal(t, critic.ID.String(), r.UserID)
	}
}
