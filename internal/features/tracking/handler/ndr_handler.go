package handler

import (
	"errors"
	"strings"

	"shipment-reconciler/internal/features/tracking/domain"
	"shipment-reconciler/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NDRHandler handles merchant actions on failed deliveries.
type NDRHandler struct {
	ndrService *service.NDRService
}

// NewNDRHandler creates a new NDRHandler.
func NewNDRHandler(ndrService *service.NDRService) *NDRHandler {
	return &NDRHandler{
		ndrService: ndrService,
	}
}

// NDRActionRequest is the body of an NDR action.
type NDRActionRequest struct {
	// Action is one of reattempt, rto or change_address.
	Action string `json:"action"`
	// Remarks is optional free text passed on to the carrier.
	Remarks string `json:"remarks"`
}

// SubmitAction godoc
// @Summary Resolve a failed delivery
// @Description Records the merchant's decision for a shipment awaiting NDR resolution
// @Tags ndr
// @Accept json
// @Produce json
// @Param waybill path string true "Carrier waybill"
// @Param request body NDRActionRequest true "Resolution"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments/{waybill}/ndr-actions [post]
func (h *NDRHandler) SubmitAction(c *fiber.Ctx) error {
	var req NDRActionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	action := domain.NDRAction(strings.ToLower(strings.TrimSpace(req.Action)))
	shipment, err := h.ndrService.Resolve(c.UserContext(), c.Params("waybill"), action, strings.TrimSpace(req.Remarks))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidNDRAction):
			return errorJSON(c, fiber.StatusBadRequest, "action must be one of reattempt, rto, change_address")
		case errors.Is(err, service.ErrShipmentNotFound):
			return errorJSON(c, fiber.StatusNotFound, "shipment not found")
		case errors.Is(err, domain.ErrNotInNDR):
			return errorJSON(c, fiber.StatusConflict, "shipment is not awaiting ndr resolution")
		}
		return internalError(c, "failed to resolve ndr action", err, zap.String("waybill", c.Params("waybill")))
	}

	return c.JSON(shipment)
}
