package dto

import (
	"encoding/json"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// CreateOrderRequest describes a purchase.
type CreateOrderRequest struct {
	FlowerName string `json:"flower_name"`
	Quantity   int    `json:"quantity"`
}

// UpdateOrderRequest carries optional order changes. Absent fields stay untouched.
type UpdateOrderRequest struct {
	Status   *string `json:"status"`
	Quantity *int    `json:"quantity"`
}

// OrderResponse is an order joined with its flower.
type OrderResponse struct {
	ID       int64          `json:"id"`
	Status   string         `json:"status"`
	Flower   FlowerResponse `json:"flower"`
	Quantity int            `json:"quantity"`
	Amount   json.Number    `json:"amount"`
}

// NewOrderResponse converts a domain order.
func NewOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:       o.ID,
		Status:   string(o.Status),
		Flower:   NewFlowerResponse(o.Flower),
		Quantity: o.Quantity,
		Amount:   json.Number(o.Amount.StringFixed(2)),
	}
}
