package user

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/utils"
	"CulinaShare-Backend/internal/utils/mailing"
	"CulinaShare-Backend/internal/utils/storage"
	"CulinaShare-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 30 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
		UpdateUserProfile(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
		GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error)
		SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserSummary, error)
		IsUsernameAvailable(ctx context.Context, username string) (bool, error)
		IsEmailAvailable(ctx context.Context, email string) (bool, error)
		ToggleFollow(ctx context.Context, followerID, followingID string) (*domain.ToggleFollowResponse, error)
		UploadProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		s3             storage.AwsS3
		appURL         string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, s3 storage.AwsS3, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		s3:             s3,
		appURL:         appURL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	available, err := s.userRepository.IsUsernameAvailable(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if !available {
		return nil, domain.ErrUsernameTaken
	}

	available, err = s.userRepository.IsEmailAvailable(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if !available {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result := user.ToDomain()
	return &result, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.LoginResponse{Token: token, User: user.ToDomain()}, nil
}

// ForgotPassword mails a reset link. Unknown addresses succeed silently so
// the endpoint cannot be used to discover accounts.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		logging.Debug().Str("email", req.Email).Msg("password reset requested for unknown account")
		return nil
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
		"purpose": jwt.PurposeResetPassword,
	}, resetTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	body := mailing.ResetPasswordBody(s.appURL, user.Username, token)
	if err := s.mailer.SendMail(user.Email, "Reset your CulinaShare password", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}
	userID, _ := claims["user_id"].(string)
	purpose, _ := claims["purpose"].(string)
	if userID == "" || purpose != jwt.PurposeResetPassword {
		return domain.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *userService) GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	profile, err := s.userRepository.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}

	return &domain.UserProfile{
		User:           profile.User.ToDomain(),
		RecipeCount:    profile.RecipeCount,
		ReviewCount:    profile.ReviewCount,
		FollowerCount:  profile.FollowerCount,
		FollowingCount: profile.FollowingCount,
	}, nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	current, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if req.Username != nil && *req.Username != current.Username {
		available, err := s.userRepository.IsUsernameAvailable(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if !available {
			return nil, domain.ErrUsernameTaken
		}
		fields["username"] = *req.Username
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if len(fields) == 0 {
		result := current.ToDomain()
		return &result, nil
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	result := updated.ToDomain()
	return &result, nil
}

func (s *userService) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	stats, err := s.userRepository.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	if stats == nil {
		return nil, domain.ErrUserNotFound
	}
	return stats, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserSummary, error) {
	users, err := s.userRepository.SearchUsers(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	result := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		result = append(result, users[i].Summary())
	}
	return result, nil
}

func (s *userService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	available, err := s.userRepository.IsUsernameAvailable(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return available, nil
}

func (s *userService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	available, err := s.userRepository.IsEmailAvailable(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return available, nil
}

func (s *userService) ToggleFollow(ctx context.Context, followerID, followingID string) (*domain.ToggleFollowResponse, error) {
	if _, err := uuid.Parse(followingID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if followerID == followingID {
		return nil, domain.ErrCannotFollowSelf
	}

	exists, err := s.userRepository.Exists(ctx, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	following, err := s.userRepository.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle follow: %w", err)
	}
	return &domain.ToggleFollowResponse{Following: following}, nil
}

func (s *userService) UploadProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	objectKey, err := s.s3.UploadFile(ctx, fmt.Sprintf("avatar-%s-%d", userID, time.Now().Unix()), file, "avatars", storage.AllowImage...)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, map[string]interface{}{
		"profile_picture_url": s.s3.GetPublicLinkKey(objectKey),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile picture: %w", err)
	}
	result := updated.ToDomain()
	return &result, nil
}
