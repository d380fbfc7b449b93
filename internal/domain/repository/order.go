package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Every query is scoped by owner; another user's order is reported as ErrNotFound.
// Reads join the referenced flower into Order.Flower.
type OrderRepository interface {
	// Create inserts a new pending order. It returns ErrConflict when the
	// owner already has an order for the flower.
	Create(ctx context.Context, userID, flowerID int64, quantity int, amount decimal.Decimal) (*model.Order, error)
	GetByFlower(ctx context.Context, userID, flowerID int64) (*model.Order, error)
	GetByID(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// Update writes status, quantity and amount of an owned order in one statement.
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, userID, orderID int64) error
}
