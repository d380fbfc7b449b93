package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
)

const (
	msgNoSuchFlower      = "Error. There is no such flower."
	msgInvalidOrderID    = "Error. Invalid order id."
	msgInvalidStatus     = "Invalid status value."
	msgInvalidQuantity   = "Quantity must be greater than 0."
	msgOrderNotFound     = "Orders not found."
	msgNoOrdersForDelete = "No orders found for given IDs."
)

// OrderHandler serves the order ledger of the authenticated user.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondInternal(c, h.logger, "list orders", err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: response})
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.facade.PlaceOrder(c.Request.Context(), CurrentUser(c), req.FlowerName, req.Quantity)
	switch status := statusOf(err); {
	case err == nil:
		respond(c, http.StatusOK, "")
	case status == http.StatusNotFound:
		respond(c, http.StatusForbidden, msgNoSuchFlower)
	case status == http.StatusBadRequest:
		respond(c, status, createValidationMessage(err))
	default:
		respondInternal(c, h.logger, "create order", err)
	}
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.facade.UpdateOrder(c.Request.Context(), CurrentUser(c), id, req.Status, req.Quantity)
	switch status := statusOf(err); {
	case err == nil:
		respond(c, http.StatusOK, "")
	case status == http.StatusNotFound:
		respond(c, status, msgOrderNotFound)
	case status == http.StatusBadRequest:
		respond(c, status, updateValidationMessage(err))
	default:
		respondInternal(c, h.logger, "update order", err)
	}
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	err := h.facade.DeleteOrder(c.Request.Context(), CurrentUser(c), id)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "")
	case statusOf(err) == http.StatusNotFound:
		respond(c, http.StatusNotFound, msgNoOrdersForDelete)
	default:
		respondInternal(c, h.logger, "delete order", err)
	}
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, msgInvalidOrderID)
		return 0, false
	}
	return id, true
}

func createValidationMessage(err error) string {
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) && verr.Field == "quantity" {
		return msgInvalidQuantity
	}
	return validationMessage(err)
}

func updateValidationMessage(err error) string {
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) && verr.Field == "status" {
		return msgInvalidStatus
	}
	return msgInvalidQuantity
}
