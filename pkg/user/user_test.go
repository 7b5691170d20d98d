package user

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/testutil"
	"CulinaShare-Backend/pkg/jwt"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    UserRepository
	service UserService
	jwt     jwt.JWTService
	mailer  *testutil.FakeMailer
	s3      *testutil.FakeS3
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	jwtService := jwt.NewJWTService("test-secret", "")
	mailer := &testutil.FakeMailer{}
	s3 := &testutil.FakeS3{}
	return &fixture{
		db:      db,
		repo:    repo,
		service: NewUserService(repo, jwtService, mailer, s3, "https://culinashare.test"),
		jwt:     jwtService,
		mailer:  mailer,
		s3:      s3,
	}
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), domain.RegisterRequest{
		Email:    username + "@example.com",
		Password: "correct-horse",
		Username: username,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "chef")
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)

	resp, err := f.service.Login(ctx, domain.LoginRequest{Email: "CHEF@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	id, role, err := f.jwt.GetUserIDByToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, domain.RoleUser, role)

	_, err = f.service.Login(ctx, domain.LoginRequest{Email: "chef@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = f.service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestRegisterConflictsWriteNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "chef")

	_, err := f.service.Register(ctx, domain.RegisterRequest{Email: "other@example.com", Password: "correct-horse", Username: "chef"})
	assert.True(t, errors.Is(err, domain.ErrUsernameTaken))

	_, err = f.service.Register(ctx, domain.RegisterRequest{Email: "chef@example.com", Password: "correct-horse", Username: "other"})
	assert.True(t, errors.Is(err, domain.ErrEmailTaken))

	var count int64
	require.NoError(t, f.db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = f.service.Register(ctx, domain.RegisterRequest{Email: "bad", Password: "short", Username: "x"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCreateUserDuplicateAtStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "chef")

	err := f.repo.CreateUser(ctx, &entities.User{Email: "new@example.com", Username: "chef"})
	assert.True(t, errors.Is(err, domain.ErrUsernameTaken))

	err = f.repo.CreateUser(ctx, &entities.User{Email: "chef@example.com", Username: "fresh"})
	assert.True(t, errors.Is(err, domain.ErrEmailTaken))
}

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "chef")

	require.NoError(t, f.service.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "chef@example.com"}))
	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "chef@example.com", f.mailer.Sent[0].To)

	// unknown addresses are not revealed
	require.NoError(t, f.service.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Len(t, f.mailer.Sent, 1)

	body := f.mailer.Sent[0].Body
	start := strings.Index(body, "token=") + len("token=")
	end := strings.Index(body[start:], `"`)
	token, err := url.QueryUnescape(body[start : start+end])
	require.NoError(t, err)

	require.NoError(t, f.service.ResetPassword(ctx, domain.ResetPasswordRequest{Token: token, Password: "brand-new-pass"}))

	_, err = f.service.Login(ctx, domain.LoginRequest{Email: "chef@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// a session token cannot reset a password
	session, err := f.jwt.GenerateTokenUser(uuid.NewString(), domain.RoleUser)
	require.NoError(t, err)
	err = f.service.ResetPassword(ctx, domain.ResetPasswordRequest{Token: session, Password: "brand-new-pass"})
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
}

func TestProfileAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chef := testutil.CreateUser(t, f.db, "chef")
	fan := testutil.CreateUser(t, f.db, "fan")

	soup := testutil.CreateRecipe(t, f.db, chef.ID, "Soup", testutil.Published())
	stew := testutil.CreateRecipe(t, f.db, fan.ID, "Stew", testutil.Published())
	bread := testutil.CreateRecipe(t, f.db, fan.ID, "Bread", testutil.Published())
	testutil.CreateReview(t, f.db, chef.ID, stew.ID, 4)
	testutil.CreateReview(t, f.db, chef.ID, bread.ID, 5)
	testutil.CreateReview(t, f.db, fan.ID, soup.ID, 3)

	_, err := f.service.ToggleFollow(ctx, fan.ID.String(), chef.ID.String())
	require.NoError(t, err)

	profile, err := f.service.GetUserProfile(ctx, chef.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "chef", profile.Username)
	assert.Equal(t, int64(1), profile.RecipeCount)
	assert.Equal(t, int64(2), profile.ReviewCount)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(0), profile.FollowingCount)

	stats, err := f.service.GetUserStats(ctx, chef.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalRecipes)
	assert.Equal(t, int64(2), stats.TotalReviews)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, int64(1), stats.TotalFollowers)

	_, err = f.service.GetUserProfile(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))

	missing, err := f.repo.GetUserStats(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStatsAverageRounding(t *testing.T) {
	f := newFixture(t)
	critic := testutil.CreateUser(t, f.db, "critic")
	owner := testutil.CreateUser(t, f.db, "owner")
	for _, rating := range []int{4, 4, 5} {
		r := testutil.CreateRecipe(t, f.db, owner.ID, "r")
		testutil.CreateReview(t, f.db, critic.ID, r.ID, rating)
	}

	stats, err := f.repo.GetUserStats(context.Background(), critic.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4.3, stats.AverageRating)
}

func TestToggleFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, f.db, "alice")
	b := testutil.CreateUser(t, f.db, "bob")

	for _, want := range []bool{true, false, true} {
		resp, err := f.service.ToggleFollow(ctx, a.ID.String(), b.ID.String())
		require.NoError(t, err)
		assert.Equal(t, want, resp.Following)
	}
	followers, err := f.repo.CountFollowers(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	_, err = f.service.ToggleFollow(ctx, a.ID.String(), a.ID.String())
	assert.True(t, errors.Is(err, domain.ErrCannotFollowSelf))

	_, err = f.service.ToggleFollow(ctx, a.ID.String(), uuid.NewString())
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestSearchAndAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "PastaQueen")
	testutil.CreateUser(t, f.db, "sushiking")
	inactive := testutil.CreateUser(t, f.db, "pastaghost")
	require.NoError(t, f.db.Model(inactive).Update("is_active", false).Error)

	found, err := f.service.SearchUsers(ctx, "pasta", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PastaQueen", found[0].Username)

	testutil.CreateUser(t, f.db, "sous_chef")
	found, err = f.service.SearchUsers(ctx, "_", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sous_chef", found[0].Username)

	available, err := f.service.IsUsernameAvailable(ctx, "sushiking")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.service.IsEmailAvailable(ctx, "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chef := f.register(t, "chef")
	f.register(t, "taken")

	bio := "Home cook"
	updated, err := f.service.UpdateUserProfile(ctx, chef.ID, domain.UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Home cook", updated.Bio)

	name := "taken"
	_, err = f.service.UpdateUserProfile(ctx, chef.ID, domain.UpdateUserRequest{Username: &name})
	assert.True(t, errors.Is(err, domain.ErrUsernameTaken))

	avatar, err := f.service.UploadProfilePicture(ctx, chef.ID, testutil.ImageHeader("image/png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(avatar.ProfilePictureURL, "https://cdn.culinashare.test/avatars/"))

	_, err = f.service.UploadProfilePicture(ctx, chef.ID, testutil.ImageHeader("text/plain"))
	assert.Error(t, err)
}
