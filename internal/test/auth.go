package test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	pkgAuth "github.com/polkiloo/flowershop/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues tokens of the form "token-<user>-<seq>".
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	seq     *atomic.Int64
}

// NewStrategyStub returns a StrategyStub producing unique tokens.
func NewStrategyStub() StrategyStub {
	return StrategyStub{seq: &atomic.Int64{}}
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	var n int64
	if s.seq != nil {
		n = s.seq.Add(1)
	}
	return fmt.Sprintf("token-%d-%d", userID, n), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var id, n int64
	if _, err := fmt.Sscanf(token, "token-%d-%d", &id, &n); err != nil {
		return 0, pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// TokenResolverStub implements middleware token resolution contract.
type TokenResolverStub struct {
	User      *model.User
	Err       error
	ResolveFn func(context.Context, string) (*model.User, error)
}

// Resolve either delegates to override or returns predefined result.
func (s TokenResolverStub) Resolve(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: 1, Username: "alice", Token: token}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
