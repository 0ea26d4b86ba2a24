package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/usecase"
)

// AdminHandler serves the secret-guarded operational endpoints.
type AdminHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// RefreshStats handles POST /api/v1/admin/stats/refresh. Triggers one
// refresh pass; if one is already in flight the response says so instead
// of queuing another.
func (h *AdminHandler) RefreshStats(c *fiber.Ctx) error {
	h.logger.Info("Manual stats refresh requested", zap.String("ip", c.IP()))

	result, err := h.statsUC.RunOnce(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetStats handles GET /api/v1/admin/stats.
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	result, err := h.statsUC.GetAll(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}
