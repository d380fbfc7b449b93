package repository

import (
	"context"

	"github.com/polkiloo/flowershop/internal/domain/model"
)

// CommentRepository stores user comments.
type CommentRepository interface {
	Create(ctx context.Context, userID int64, text string) (*model.Comment, error)
	List(ctx context.Context) ([]model.Comment, error)
}
