package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// OrderHandler accepts order submissions from the mini-app
type OrderHandler struct {
	BaseHandler
	intake *apporder.IntakeService
	logger *zap.Logger
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(intake *apporder.IntakeService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{intake: intake, logger: logger}
}

// Create accepts an order payload, reprices it server-side and persists
// it. Web submissions carry no telegram user.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, "Malformed order payload")
		return
	}

	orderID, err := h.intake.Place(c.Request.Context(), req.ToPayload())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.OrderResponse{OK: true, OrderID: orderID.String()})
}
