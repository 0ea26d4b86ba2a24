package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// MapHandler serves the zoom-adaptive viewport endpoint.
type MapHandler struct {
	mapUC  *usecase.MapQueryUseCase
	logger *zap.Logger
}

// NewMapHandler creates a new MapHandler.
func NewMapHandler(mapUC *usecase.MapQueryUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// Query handles GET /api/v1/map.
func (h *MapHandler) Query(c *fiber.Ctx) error {
	var req dto.MapQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiberBadRequest(err))
	}

	result, err := h.mapUC.Query(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	total := len(result.Areas)
	if result.Mode == dto.MapModeShops {
		total = len(result.Shops)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: total,
	})
}
