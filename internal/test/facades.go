package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
)

// UpdateOrderCall captures arguments passed to ShopFacadeStub.UpdateOrder.
type UpdateOrderCall struct {
	UserID   int64
	OrderID  int64
	Status   *string
	Quantity *int
}

// ShopFacadeStub provides controllable behaviour for every HTTP endpoint.
// Zero value answers with canned successful data.
type ShopFacadeStub struct {
	RegisterFn    func(context.Context, string, string, string) error
	LoginFn       func(context.Context, string, string) (string, error)
	LogoutFn      func(context.Context, string) error
	ResolveFn     func(context.Context, string) (*model.User, error)
	FlowersFn     func(context.Context, *model.FlowerCategory) ([]model.Flower, error)
	OrdersFn      func(context.Context, *model.User) ([]model.Order, error)
	PlaceOrderFn  func(context.Context, *model.User, string, int) error
	UpdateOrderFn func(context.Context, *model.User, int64, *string, *int) error
	DeleteOrderFn func(context.Context, *model.User, int64) error
	CommentsFn    func(context.Context) ([]model.Comment, error)
	PostCommentFn func(context.Context, *model.User, string) error
	HealthFn      func(context.Context) error

	mu      sync.Mutex
	Updates []UpdateOrderCall
}

// Register delegates to RegisterFn.
func (s *ShopFacadeStub) Register(ctx context.Context, username, email, password string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, email, password)
	}
	return nil
}

// Login returns "session-token" unless overridden.
func (s *ShopFacadeStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "session-token", nil
}

// Logout rejects empty tokens by default.
func (s *ShopFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	if token == "" {
		return domainErrors.ErrUnauthorized
	}
	return nil
}

// Resolve accepts any non-empty token as alice.
func (s *ShopFacadeStub) Resolve(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return TokenResolverStub{}.Resolve(ctx, token)
}

// Flowers returns Rose and Tulip filtered by category.
func (s *ShopFacadeStub) Flowers(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error) {
	if s.FlowersFn != nil {
		return s.FlowersFn(ctx, category)
	}
	return NewFlowerRepositoryStub(Rose(), Tulip()).List(ctx, category)
}

// Orders returns a single pending Rose order.
func (s *ShopFacadeStub) Orders(ctx context.Context, user *model.User) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, user)
	}
	rose := Rose()
	return []model.Order{{
		ID:       1,
		UserID:   user.ID,
		Flower:   rose,
		Quantity: 3,
		Amount:   rose.PriceFor(3),
		Status:   model.OrderStatusPending,
	}}, nil
}

// PlaceOrder delegates to PlaceOrderFn.
func (s *ShopFacadeStub) PlaceOrder(ctx context.Context, user *model.User, flowerName string, quantity int) error {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, user, flowerName, quantity)
	}
	return nil
}

// UpdateOrder records the call and delegates to UpdateOrderFn.
func (s *ShopFacadeStub) UpdateOrder(ctx context.Context, user *model.User, orderID int64, status *string, quantity *int) error {
	s.mu.Lock()
	s.Updates = append(s.Updates, UpdateOrderCall{UserID: user.ID, OrderID: orderID, Status: status, Quantity: quantity})
	s.mu.Unlock()
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, user, orderID, status, quantity)
	}
	return nil
}

// DeleteOrder delegates to DeleteOrderFn.
func (s *ShopFacadeStub) DeleteOrder(ctx context.Context, user *model.User, orderID int64) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, user, orderID)
	}
	return nil
}

// Comments returns one comment by alice.
func (s *ShopFacadeStub) Comments(ctx context.Context) ([]model.Comment, error) {
	if s.CommentsFn != nil {
		return s.CommentsFn(ctx)
	}
	return []model.Comment{{ID: 1, UserID: 1, Username: "alice", Text: "Lovely roses"}}, nil
}

// PostComment delegates to PostCommentFn.
func (s *ShopFacadeStub) PostComment(ctx context.Context, user *model.User, text string) error {
	if s.PostCommentFn != nil {
		return s.PostCommentFn(ctx, user, text)
	}
	return nil
}

// HealthCheck delegates to HealthFn.
func (s *ShopFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
