package statistics

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/logging"
	"CulinaShare-Backend/internal/metrics"
	"context"
)

type (
	// StatisticsService never fails. A storage fault is logged and reported
	// as zero.
	StatisticsService interface {
		GetAppStatistics(ctx context.Context) domain.AppStatistics
		GetRecipeCount(ctx context.Context) int64
		GetUserCount(ctx context.Context) int64
		GetCuisineTypesCount(ctx context.Context) int64
	}

	statisticsService struct {
		statisticsRepository StatisticsRepository
	}
)

func NewStatisticsService(statisticsRepository StatisticsRepository) StatisticsService {
	return &statisticsService{statisticsRepository: statisticsRepository}
}

func (s *statisticsService) GetAppStatistics(ctx context.Context) domain.AppStatistics {
	return domain.AppStatistics{
		TotalRecipes:      s.GetRecipeCount(ctx),
		TotalUsers:        s.GetUserCount(ctx),
		TotalCuisineTypes: s.GetCuisineTypesCount(ctx),
	}
}

func (s *statisticsService) GetRecipeCount(ctx context.Context) int64 {
	count, err := s.statisticsRepository.CountPublishedRecipes(ctx)
	if err != nil {
		fallback("recipe_count", err)
		return 0
	}
	return count
}

func (s *statisticsService) GetUserCount(ctx context.Context) int64 {
	count, err := s.statisticsRepository.CountActiveUsers(ctx)
	if err != nil {
		fallback("user_count", err)
		return 0
	}
	return count
}

func (s *statisticsService) GetCuisineTypesCount(ctx context.Context) int64 {
	cuisines, err := s.statisticsRepository.ListCuisines(ctx)
	if err != nil {
		fallback("cuisine_count", err)
		return 0
	}
	return int64(len(cuisines))
}

func fallback(query string, err error) {
	logging.Warn().Err(err).Str("query", query).Msg("statistics query failed, reporting zero")
	metrics.ObserveStatisticsFallback(query)
}
