package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// AreaHandler serves the operational area browse endpoints.
type AreaHandler struct {
	areaUC *usecase.AreaUseCase
	logger *zap.Logger
}

// NewAreaHandler creates a new AreaHandler.
func NewAreaHandler(areaUC *usecase.AreaUseCase, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		areaUC: areaUC,
		logger: logger,
	}
}

// List handles GET /api/v1/areas.
func (h *AreaHandler) List(c *fiber.Ctx) error {
	req := dto.AreaListRequest{
		WithGeometry: c.QueryBool("with_geometry", false),
	}

	result, err := h.areaUC.ListAreas(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetBySlug handles GET /api/v1/areas/:slug.
func (h *AreaHandler) GetBySlug(c *fiber.Ctx) error {
	result, err := h.areaUC.GetAreaBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
