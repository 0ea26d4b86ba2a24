package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/usecase"
)

// BoundaryHandler serves the administrative hierarchy endpoints.
type BoundaryHandler struct {
	areaUC *usecase.AreaUseCase
	logger *zap.Logger
}

// NewBoundaryHandler creates a new BoundaryHandler.
func NewBoundaryHandler(areaUC *usecase.AreaUseCase, logger *zap.Logger) *BoundaryHandler {
	return &BoundaryHandler{
		areaUC: areaUC,
		logger: logger,
	}
}

// List handles GET /api/v1/boundaries.
func (h *BoundaryHandler) List(c *fiber.Ctx) error {
	level := c.QueryInt("level", domain.AdminLevelRegion)

	result, err := h.areaUC.ListBoundaries(c.Context(), level)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}

// GetByID handles GET /api/v1/boundaries/:id.
func (h *BoundaryHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	result, err := h.areaUC.GetBoundary(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
