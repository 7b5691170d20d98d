package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessSearchUsers    = "success search users"
	MessageSuccessCheckAvailable = "success check availability"
	MessageSuccessToggleFollow   = "follow toggled successfully"
	MessageSuccessForgotPassword = "if the email is registered, a reset link has been sent"
	MessageSuccessResetPassword  = "password reset successfully"
	MessageSuccessUploadAvatar   = "profile picture uploaded successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedSearchUsers    = "failed to search users"
	MessageFailedCheckAvailable = "failed to check availability"
	MessageFailedToggleFollow   = "failed to toggle follow"
	MessageFailedForgotPassword = "failed to process forgot password"
	MessageFailedResetPassword  = "failed to reset password"
	MessageFailedUploadAvatar   = "failed to upload profile picture"

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrCannotFollowSelf   = errors.New("users cannot follow themselves")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		Username  string `json:"username" validate:"required,min=3,max=30"`
		FirstName string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
		LastName  string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=1"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	UpdateUserRequest struct {
		Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
		FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
		LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
		Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
		Location  *string `json:"location,omitempty" validate:"omitempty,max=100"`
		Website   *string `json:"website,omitempty" validate:"omitempty,url"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	User struct {
		ID                string    `json:"id"`
		Email             string    `json:"email"`
		Username          string    `json:"username"`
		FirstName         string    `json:"first_name,omitempty"`
		LastName          string    `json:"last_name,omitempty"`
		Bio               string    `json:"bio,omitempty"`
		Location          string    `json:"location,omitempty"`
		Website           string    `json:"website,omitempty"`
		ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
		IsVerified        bool      `json:"is_verified"`
		IsActive          bool      `json:"is_active"`
		CreatedAt         time.Time `json:"created_at"`
		UpdatedAt         time.Time `json:"updated_at"`
	}

	UserProfile struct {
		User
		RecipeCount    int64 `json:"recipe_count"`
		ReviewCount    int64 `json:"review_count"`
		FollowerCount  int64 `json:"follower_count"`
		FollowingCount int64 `json:"following_count"`
	}

	UserStats struct {
		TotalRecipes   int64   `json:"total_recipes"`
		TotalReviews   int64   `json:"total_reviews"`
		TotalFollowers int64   `json:"total_followers"`
		TotalFollowing int64   `json:"total_following"`
		AverageRating  float64 `json:"average_rating"`
	}

	AvailabilityResponse struct {
		Username *bool `json:"username_available,omitempty"`
		Email    *bool `json:"email_available,omitempty"`
	}

	ToggleFollowResponse struct {
		Following bool `json:"following"`
	}
)
