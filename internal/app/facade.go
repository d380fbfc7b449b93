package app

import (
	"context"

	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ShopFacade adapts use cases to the operations exposed over HTTP.
type ShopFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderLedger
	comments *usecase.CommentUseCase
	health   HealthChecker
}

func NewShopFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderLedger, comments *usecase.CommentUseCase, health HealthChecker) *ShopFacade {
	return &ShopFacade{auth: auth, catalog: catalog, orders: orders, comments: comments, health: health}
}

func (f *ShopFacade) Register(ctx context.Context, username, email, password string) error {
	_, err := f.auth.Register(ctx, username, email, password)
	return err
}

func (f *ShopFacade) Login(ctx context.Context, email, password string) (string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *ShopFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *ShopFacade) Resolve(ctx context.Context, token string) (*model.User, error) {
	return f.auth.Resolve(ctx, token)
}

func (f *ShopFacade) Flowers(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error) {
	return f.catalog.List(ctx, category)
}

func (f *ShopFacade) Orders(ctx context.Context, user *model.User) ([]model.Order, error) {
	return f.orders.List(ctx, user)
}

func (f *ShopFacade) PlaceOrder(ctx context.Context, user *model.User, flowerName string, quantity int) error {
	return f.orders.Create(ctx, user, flowerName, quantity)
}

func (f *ShopFacade) UpdateOrder(ctx context.Context, user *model.User, orderID int64, status *string, quantity *int) error {
	return f.orders.Update(ctx, user, orderID, usecase.OrderChanges{Status: status, Quantity: quantity})
}

func (f *ShopFacade) DeleteOrder(ctx context.Context, user *model.User, orderID int64) error {
	return f.orders.Delete(ctx, user, orderID)
}

func (f *ShopFacade) Comments(ctx context.Context) ([]model.Comment, error) {
	return f.comments.List(ctx)
}

func (f *ShopFacade) PostComment(ctx context.Context, user *model.User, text string) error {
	_, err := f.comments.Post(ctx, user, text)
	return err
}

func (f *ShopFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

// EnsureAdmin bootstraps the configured superuser account.
func (f *ShopFacade) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	return f.auth.EnsureAdmin(ctx, username, email, password)
}
