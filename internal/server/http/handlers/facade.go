package handlers

import (
	"context"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// AuthFacade describes account and session capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// CatalogFacade exposes the flower catalog.
type CatalogFacade interface {
	Flowers(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error)
}

// OrderFacade encapsulates order operations of the authenticated user.
type OrderFacade interface {
	Orders(ctx context.Context, user *model.User) ([]model.Order, error)
	PlaceOrder(ctx context.Context, user *model.User, flowerName string, quantity int) error
	UpdateOrder(ctx context.Context, user *model.User, orderID int64, status *string, quantity *int) error
	DeleteOrder(ctx context.Context, user *model.User, orderID int64) error
}

// CommentFacade provides the public comment wall.
type CommentFacade interface {
	Comments(ctx context.Context) ([]model.Comment, error)
	PostComment(ctx context.Context, user *model.User, text string) error
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	CommentFacade
	HealthFacade
}
