package review

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/utils"
	"CulinaShare-Backend/pkg/recipe"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type (
	ReviewService interface {
		CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (*domain.Review, error)
		UpdateReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, userID string) (*domain.Review, error)
		DeleteReview(ctx context.Context, reviewID string, userID string) error
		GetReviewsByRecipe(ctx context.Context, recipeID, viewerID string, page, limit int) (*domain.ReviewListResponse, error)
		GetReviewsByUser(ctx context.Context, userID string, page, limit int) (*domain.ReviewListResponse, error)
		GetUserReviewForRecipe(ctx context.Context, userID, recipeID string) (*domain.Review, error)
		GetAverageRating(ctx context.Context, recipeID string) (float64, error)
		GetRatingDistribution(ctx context.Context, recipeID string) (map[int]int64, error)
		GetRatingSummary(ctx context.Context, recipeID, viewerID string) (*domain.RatingSummary, error)
		HasUserReviewed(ctx context.Context, userID, recipeID string) (bool, error)
	}

	reviewService struct {
		reviewRepository ReviewRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository, recipeRepository recipe.RecipeRepository) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (*domain.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.visibleRecipe(ctx, req.RecipeID, userID); err != nil {
		return nil, err
	}

	reviewed, err := s.reviewRepository.HasUserReviewed(ctx, userID, req.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if reviewed {
		return nil, domain.ErrReviewAlreadyExists
	}

	review := &entities.Review{
		UserID:   userUUID,
		RecipeID: recipeUUID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	// the unique index still catches a concurrent duplicate
	if err := s.reviewRepository.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	result := review.ToDomain()
	return &result, nil
}

// visibleRecipe hides drafts from everyone but their owner.
func (s *reviewService) visibleRecipe(ctx context.Context, recipeID, viewerID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil || !recipe.VisibleTo(viewerID) {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// ownedReview loads the review and checks that userID wrote it.
func (s *reviewService) ownedReview(ctx context.Context, reviewID, userID string) (*entities.Review, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	review, err := s.reviewRepository.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, domain.ErrReviewNotFound
	}
	if review.UserID != userUUID {
		return nil, domain.ErrUnauthorizedReviewAccess
	}
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, userID string) (*domain.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	existing, err := s.ownedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if len(fields) == 0 {
		result := existing.ToDomain()
		return &result, nil
	}

	updated, err := s.reviewRepository.UpdateReview(ctx, reviewID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	result := updated.ToDomain()
	return &result, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID string) error {
	if _, err := s.ownedReview(ctx, reviewID, userID); err != nil {
		return err
	}
	if err := s.reviewRepository.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (s *reviewService) GetReviewsByRecipe(ctx context.Context, recipeID, viewerID string, page, limit int) (*domain.ReviewListResponse, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if err := s.visibleRecipe(ctx, recipeID, viewerID); err != nil {
		return nil, err
	}
	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()

	reviews, err := s.reviewRepository.GetByRecipeID(ctx, recipeID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe reviews: %w", err)
	}
	total, err := s.reviewRepository.CountByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipe reviews: %w", err)
	}

	return &domain.ReviewListResponse{
		Reviews:    entities.ReviewsToDomain(reviews),
		Pagination: domain.NewPaginationResponse(p, total),
	}, nil
}

func (s *reviewService) GetReviewsByUser(ctx context.Context, userID string, page, limit int) (*domain.ReviewListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	p := domain.PaginationRequest{Page: page, Limit: limit}.Normalize()

	reviews, err := s.reviewRepository.GetByUserID(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}
	total, err := s.reviewRepository.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user reviews: %w", err)
	}

	return &domain.ReviewListResponse{
		Reviews:    entities.ReviewsToDomain(reviews),
		Pagination: domain.NewPaginationResponse(p, total),
	}, nil
}

func (s *reviewService) GetUserReviewForRecipe(ctx context.Context, userID, recipeID string) (*domain.Review, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	review, err := s.reviewRepository.GetByUserAndRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, domain.ErrReviewNotFound
	}
	result := review.ToDomain()
	return &result, nil
}

func (s *reviewService) GetAverageRating(ctx context.Context, recipeID string) (float64, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return 0, domain.ErrParseUUID
	}
	avg, err := s.reviewRepository.GetAverageRating(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get average rating: %w", err)
	}
	return avg, nil
}

func (s *reviewService) GetRatingDistribution(ctx context.Context, recipeID string) (map[int]int64, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	dist, err := s.reviewRepository.GetRatingDistribution(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating distribution: %w", err)
	}
	return dist, nil
}

func (s *reviewService) GetRatingSummary(ctx context.Context, recipeID, viewerID string) (*domain.RatingSummary, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if err := s.visibleRecipe(ctx, recipeID, viewerID); err != nil {
		return nil, err
	}
	avg, err := s.GetAverageRating(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	dist, err := s.GetRatingDistribution(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range dist {
		total += n
	}
	return &domain.RatingSummary{AverageRating: avg, TotalRatings: total, Distribution: dist}, nil
}

func (s *reviewService) HasUserReviewed(ctx context.Context, userID, recipeID string) (bool, error) {
	reviewed, err := s.reviewRepository.HasUserReviewed(ctx, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return reviewed, nil
}
