package handlers

import (
	"CulinaShare-Backend/domain"
	"CulinaShare-Backend/internal/api/presenters"
	"CulinaShare-Backend/pkg/statistics"

	"github.com/gofiber/fiber/v2"
)

type (
	StatisticsHandler interface {
		GetStatistics(c *fiber.Ctx) error
	}

	statisticsHandler struct {
		statisticsService statistics.StatisticsService
	}
)

func NewStatisticsHandler(statisticsService statistics.StatisticsService) StatisticsHandler {
	return &statisticsHandler{
		statisticsService: statisticsService,
	}
}

func (h *statisticsHandler) GetStatistics(c *fiber.Ctx) error {
	res := h.statisticsService.GetAppStatistics(c.Context())
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStatistics)
}
