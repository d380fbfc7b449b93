package repository

import (
	"context"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// NewUser holds the fields needed to persist a user account.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
}

// UserRepository describes persistence operations for users and their sessions.
type UserRepository interface {
	Create(ctx context.Context, user NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	SetToken(ctx context.Context, userID int64, token string) error
	// ClearToken revokes the session identified by token.
	// It returns ErrNotFound when no user holds that token.
	ClearToken(ctx context.Context, token string) error
}
