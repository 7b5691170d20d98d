package user

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/pkg/database"
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultSearchLimit = 10

type (
	// UserProfile is a user row with its public counters.
	UserProfile struct {
		User           entities.User
		RecipeCount    int64
		ReviewCount    int64
		FollowerCount  int64
		FollowingCount int64
	}

	UserRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		FindByEmail(ctx context.Context, email string) (*entities.User, error)
		FindByUsername(ctx context.Context, username string) (*entities.User, error)
		CreateUser(ctx context.Context, user *entities.User) error
		UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*entities.User, error)
		UpdatePassword(ctx context.Context, id string, passwordHash string) error
		GetUserProfile(ctx context.Context, id string) (*UserProfile, error)
		GetUserStats(ctx context.Context, id string) (*domain.UserStats, error)
		SearchUsers(ctx context.Context, query string, limit int) ([]entities.User, error)
		IsUsernameAvailable(ctx context.Context, username string) (bool, error)
		IsEmailAvailable(ctx context.Context, email string) (bool, error)
		ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)
		CountFollowers(ctx context.Context, userID string) (int64, error)
		CountFollowing(ctx context.Context, userID string) (int64, error)
		Exists(ctx context.Context, id string) (bool, error)
	}

	userRepository struct {
		*database.Repository[entities.User]
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		Repository: database.NewRepository[entities.User](db, "users"),
		db:         db,
	}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return r.FindByID(ctx, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findBy(ctx, "find_by_email", "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findBy(ctx, "find_by_username", "username", strings.TrimSpace(username))
}

func (r *userRepository) findBy(ctx context.Context, op, column, value string) (_ *entities.User, err error) {
	defer database.Track(&err, r.Collection(), op, time.Now())

	var user entities.User
	if err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new active, unverified account. A unique index
// violation is reported as ErrUsernameTaken or ErrEmailTaken.
func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) (err error) {
	defer database.Track(&err, r.Collection(), "create_user", time.Now())

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	user.IsVerified = false
	user.IsActive = true

	err = r.db.WithContext(ctx).Create(user).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	var taken int64
	if countErr := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("username = ?", user.Username).
		Count(&taken).Error; countErr == nil && taken > 0 {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}

func (r *userRepository) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (_ *entities.User, err error) {
	defer database.Track(&err, r.Collection(), "update_user", time.Now())

	user, err := r.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, domain.ErrUsernameTaken
	}
	return user, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	_, err := r.Update(ctx, id, map[string]interface{}{"password_hash": passwordHash})
	return err
}

// GetUserProfile returns nil when the user does not exist. The four counters
// are read concurrently.
func (r *userRepository) GetUserProfile(ctx context.Context, id string) (_ *UserProfile, err error) {
	defer database.Track(&err, r.Collection(), "get_profile", time.Now())

	user, err := r.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	profile := &UserProfile{User: *user}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile.RecipeCount, err = r.countWhere(gctx, &entities.Recipe{}, "user_id", id)
		return err
	})
	g.Go(func() (err error) {
		profile.ReviewCount, err = r.countWhere(gctx, &entities.Review{}, "user_id", id)
		return err
	})
	g.Go(func() (err error) {
		profile.FollowerCount, err = r.CountFollowers(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		profile.FollowingCount, err = r.CountFollowing(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetUserStats returns nil when the user does not exist. average_rating is
// the mean of the ratings the user has given, rounded to one decimal.
func (r *userRepository) GetUserStats(ctx context.Context, id string) (_ *domain.UserStats, err error) {
	defer database.Track(&err, r.Collection(), "get_stats", time.Now())

	exists, err := r.Exists(ctx, id)
	if err != nil || !exists {
		return nil, err
	}

	stats := &domain.UserStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalRecipes, err = r.countWhere(gctx, &entities.Recipe{}, "user_id", id)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = r.countWhere(gctx, &entities.Review{}, "user_id", id)
		return err
	})
	g.Go(func() error {
		var avg float64
		if err := r.db.WithContext(gctx).
			Model(&entities.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Where("user_id = ?", id).
			Scan(&avg).Error; err != nil {
			return err
		}
		stats.AverageRating = math.Round(avg*10) / 10
		return nil
	})
	g.Go(func() (err error) {
		stats.TotalFollowers, err = r.CountFollowers(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFollowing, err = r.CountFollowing(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *userRepository) countWhere(ctx context.Context, model interface{}, column string, value string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Count(&count).Error
	return count, err
}

// SearchUsers matches active users whose username, first or last name
// contains query, ignoring case.
func (r *userRepository) SearchUsers(ctx context.Context, query string, limit int) (_ []entities.User, err error) {
	defer database.Track(&err, r.Collection(), "search", time.Now())

	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}

	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if term := strings.TrimSpace(query); term != "" {
		pattern := database.ContainsPattern(term)
		q = q.Where("(LOWER(username) LIKE ?"+database.LikeEscape+
			" OR LOWER(first_name) LIKE ?"+database.LikeEscape+
			" OR LOWER(last_name) LIKE ?"+database.LikeEscape+")", pattern, pattern, pattern)
	}

	var users []entities.User
	if err := q.Order("username asc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	user, err := r.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

func (r *userRepository) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// ToggleFollow flips whether followerID follows followingID and reports the
// new state.
func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followingID string) (following bool, err error) {
	defer database.Track(&err, "user_follows", "toggle", time.Now())

	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return false, domain.ErrParseUUID
	}
	followingUUID, err := uuid.Parse(followingID)
	if err != nil {
		return false, domain.ErrParseUUID
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&entities.UserFollow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		following = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entities.UserFollow{FollowerID: followerUUID, FollowingID: followingUUID}).Error
	})
	return following, err
}

func (r *userRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.countWhere(ctx, &entities.UserFollow{}, "following_id", userID)
}

func (r *userRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.countWhere(ctx, &entities.UserFollow{}, "follower_id", userID)
}
