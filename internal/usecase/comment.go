package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

// CommentUseCase publishes and lists user comments.
type CommentUseCase struct {
	comments repository.CommentRepository
}

// NewCommentUseCase constructs CommentUseCase.
func NewCommentUseCase(comments repository.CommentRepository) *CommentUseCase {
	return &CommentUseCase{comments: comments}
}

// Post stores a comment authored by user.
func (u *CommentUseCase) Post(ctx context.Context, user *model.User, text string) (*model.Comment, error) {
	input := commentInput{Text: strings.TrimSpace(text)}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return u.comments.Create(ctx, user.ID, input.Text)
}

// List returns all comments, oldest first.
func (u *CommentUseCase) List(ctx context.Context) ([]model.Comment, error) {
	return u.comments.List(ctx)
}
