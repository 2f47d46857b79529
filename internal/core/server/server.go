package server

import (
	"context"
	"errors"
	"fmt"

	"shipment-reconciler/internal/core/config"
	"shipment-reconciler/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "shipment-reconciler/docs/swagger"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// errorBody mirrors the handlers' error payload for errors that escape them.
type errorBody struct {
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "shipment-reconciler",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Environment != "production",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// errorHandler renders unhandled errors, including panics caught by recover,
// as JSON with the request's ray id.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	rayID, _ := c.Locals("requestid").(string)
	if code >= fiber.StatusInternalServerError {
		logger.Get().Error("Unhandled request error",
			zap.String("ray_id", rayID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	message := err.Error()
	if code == fiber.StatusInternalServerError && fe == nil {
		message = "internal server error"
	}

	return c.Status(code).JSON(errorBody{Message: message, RayID: rayID})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Get().Info("Shutting down server")
	return s.App.ShutdownWithContext(ctx)
}
