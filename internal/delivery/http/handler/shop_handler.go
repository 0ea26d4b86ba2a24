package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// ShopHandler serves shop search endpoints.
type ShopHandler struct {
	radiusUC *usecase.RadiusSearchUseCase
	logger   *zap.Logger
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(radiusUC *usecase.RadiusSearchUseCase, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		radiusUC: radiusUC,
		logger:   logger,
	}
}

// SearchRadius handles GET /api/v1/shops/radius. lat, lon and radius_m are
// optional; their absence changes the search semantics rather than failing.
func (h *ShopHandler) SearchRadius(c *fiber.Ctx) error {
	req := dto.RadiusSearchRequest{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Limit:    c.QueryInt("limit", 0),
	}

	var err error
	if req.Lat, err = optionalFloat(c, "lat"); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if req.Lon, err = optionalFloat(c, "lon"); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if req.RadiusM, err = optionalFloat(c, "radius_m"); err != nil {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}

	result, err := h.radiusUC.Search(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// optionalFloat parses a query parameter that may be absent. Absent means
// nil; present but malformed is an error.
func optionalFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// fiberBadRequest wraps a parse failure into the shared error shape.
func fiberBadRequest(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"parse": err.Error(),
	})
}
