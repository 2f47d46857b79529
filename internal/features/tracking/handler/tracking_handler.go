package handler

import (
	"errors"

	"shipment-reconciler/internal/core/logger"
	"shipment-reconciler/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// errorJSON writes an ErrorResponse carrying the request's ray id.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	rayID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID,
	})
}

// internalError logs err against the request's ray id and answers 500 with
// message only; storage error text never reaches the caller.
func internalError(c *fiber.Ctx, message string, err error, fields ...zap.Field) error {
	rayID, _ := c.Locals("requestid").(string)
	fields = append([]zap.Field{
		zap.String("ray_id", rayID),
		zap.String("path", c.Path()),
		zap.Error(err),
	}, fields...)
	logger.Get().Error("Request failed", fields...)
	return errorJSON(c, fiber.StatusInternalServerError, message)
}

// GetTracking godoc
// @Summary Get tracking for a waybill
// @Description Returns the tracking projection of a waybill together with every carrier event recorded for it
// @Tags tracking
// @Produce json
// @Param waybill path string true "Carrier waybill"
// @Success 200 {object} service.TrackingView
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tracking/{waybill} [get]
func (h *TrackingHandler) GetTracking(c *fiber.Ctx) error {
	waybill := c.Params("waybill")
	if waybill == "" {
		return errorJSON(c, fiber.StatusBadRequest, "waybill is required")
	}

	view, err := h.trackingService.GetTracking(c.UserContext(), waybill)
	if err != nil {
		if errors.Is(err, service.ErrTrackingNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "tracking not found")
		}
		return internalError(c, "failed to get tracking", err, zap.String("waybill", waybill))
	}

	return c.JSON(view)
}
