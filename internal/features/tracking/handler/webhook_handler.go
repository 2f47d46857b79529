package handler

import (
	"encoding/json"
	"errors"

	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WebhookHandler receives carrier status pushes.
type WebhookHandler struct {
	reconciler *service.ReconciliationService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconciler *service.ReconciliationService) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
	}
}

// ReceiveStatus godoc
// @Summary Receive a carrier status update
// @Description Records the carrier event and reconciles the matching shipment. Redelivered events and events for unknown shipments are acknowledged with success.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param payload body domain.WebhookPayload true "Carrier status push"
// @Success 200 {object} service.Result
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /webhooks/carrier [post]
func (h *WebhookHandler) ReceiveStatus(c *fiber.Ctx) error {
	// Fiber reuses the request buffer once the handler returns.
	raw := append([]byte(nil), c.Body()...)

	var payload domain.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.reconciler.Process(c.UserContext(), payload, raw)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return internalError(c, "failed to process webhook", err, zap.String("waybill", result.Waybill))
	}

	return c.JSON(result)
}
