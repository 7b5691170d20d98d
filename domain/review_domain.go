package domain

import (
	"errors"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	MessageSuccessCreateReview = "review created successfully"
	MessageSuccessUpdateReview = "review updated successfully"
	MessageSuccessDeleteReview = "review deleted successfully"
	MessageSuccessGetReviews   = "success get reviews"
	MessageSuccessGetRating    = "success get rating summary"

	MessageFailedCreateReview = "failed to create review"
	MessageFailedUpdateReview = "failed to update review"
	MessageFailedDeleteReview = "failed to delete review"
	MessageFailedGetReviews   = "failed to get reviews"
	MessageFailedGetRating    = "failed to get rating summary"

	ErrReviewNotFound           = errors.New("review not found")
	ErrReviewAlreadyExists      = errors.New("user has already reviewed this recipe")
	ErrUnauthorizedReviewAccess = errors.New("unauthorized access to review")
)

type (
	CreateReviewRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
		Rating   int    `json:"rating" validate:"required,min=1,max=5"`
		Comment  string `json:"comment,omitempty" validate:"omitempty,max=1000"`
	}

	UpdateReviewRequest struct {
		Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
		Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
	}

	RecipeSummary struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		ImageURL string `json:"image_url,omitempty"`
	}

	Review struct {
		ID         string         `json:"id"`
		UserID     string         `json:"user_id"`
		RecipeID   string         `json:"recipe_id"`
		Rating     int            `json:"rating"`
		Comment    string         `json:"comment,omitempty"`
		IsVerified bool           `json:"is_verified"`
		User       *UserSummary   `json:"user,omitempty"`
		Recipe     *RecipeSummary `json:"recipe,omitempty"`
		CreatedAt  time.Time      `json:"created_at"`
		UpdatedAt  time.Time      `json:"updated_at"`
	}

	ReviewListResponse struct {
		Reviews    []Review           `json:"reviews"`
		Pagination PaginationResponse `json:"pagination"`
	}

	RatingSummary struct {
		AverageRating float64       `json:"average_rating"`
		TotalRatings  int64         `json:"total_ratings"`
		Distribution  map[int]int64 `json:"distribution"`
	}
)
