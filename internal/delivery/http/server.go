package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/delivery/http/handler"
	"github.com/shopzone-microservice/internal/delivery/http/middleware"
	"github.com/shopzone-microservice/internal/pkg/errors"
)

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	mapHandler      *handler.MapHandler
	shopHandler     *handler.ShopHandler
	areaHandler     *handler.AreaHandler
	boundaryHandler *handler.BoundaryHandler
	adminHandler    *handler.AdminHandler
}

// NewServer creates the HTTP server with middleware and routes wired.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mapHandler *handler.MapHandler,
	shopHandler *handler.ShopHandler,
	areaHandler *handler.AreaHandler,
	boundaryHandler *handler.BoundaryHandler,
	adminHandler *handler.AdminHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "ShopZone Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		mapHandler:      mapHandler,
		shopHandler:     shopHandler,
		areaHandler:     areaHandler,
		boundaryHandler: boundaryHandler,
		adminHandler:    adminHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Map
	api.Get("/map", s.mapHandler.Query)

	// Shops
	api.Get("/shops/radius", s.shopHandler.SearchRadius)

	// Operational areas
	api.Get("/areas", s.areaHandler.List)
	api.Get("/areas/:slug", s.areaHandler.GetBySlug)

	// Administrative hierarchy
	api.Get("/boundaries", s.boundaryHandler.List)
	api.Get("/boundaries/:id", s.boundaryHandler.GetByID)

	// Admin, shared-secret guarded
	admin := api.Group("/admin", middleware.AdminAuth(
		s.config.Admin.SharedSecret,
		s.config.Admin.AllowedIPs,
		s.logger,
	))
	admin.Post("/stats/refresh", s.adminHandler.RefreshStats)
	admin.Get("/stats", s.adminHandler.GetStats)
}

// Start begins serving on the configured address.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := errors.ErrInternalServer.Message

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errorCode(code),
				"message": message,
			},
		})
	}
}

// errorCode maps an HTTP status onto the response error-code taxonomy, so
// auth rejections and routing errors are not reported as server failures.
func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		return errors.ErrInternalServer.Code
	}
}
