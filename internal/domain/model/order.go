package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusFailed    OrderStatus = "Failed"
)

// ParseOrderStatus maps user input onto the closed OrderStatus set.
// Matching ignores case; the canonical spelling is returned.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusFailed} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, true
		}
	}
	return "", false
}

// Order is one line of a user's ledger: a flower, how many, and what it costs.
// Flower is the catalog snapshot joined at read time.
type Order struct {
	ID        int64
	UserID    int64
	Flower    Flower
	Quantity  int
	Amount    decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderPatch carries the optional fields of an order update.
type OrderPatch struct {
	Quantity *int
	Status   *OrderStatus
}

// Empty reports whether the patch changes nothing.
func (p OrderPatch) Empty() bool {
	return p.Quantity == nil && p.Status == nil
}
