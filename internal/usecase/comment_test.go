package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	testhelpers "github.com/polkiloo/flowershop/internal/test"
)

func TestCommentUseCasePostAndList(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID[1] = &model.User{ID: 1, Username: "alice"}
	repo := &testhelpers.CommentRepositoryStub{Users: users}
	uc := NewCommentUseCase(repo)
	ctx := context.Background()

	comment, err := uc.Post(ctx, users.ByID[1], "  Lovely roses!  ")
	require.NoError(t, err)
	assert.Equal(t, "Lovely roses!", comment.Text)
	assert.Equal(t, "alice", comment.Username)

	comments, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(1), comments[0].UserID)
}

func TestCommentUseCasePostValidation(t *testing.T) {
	repo := &testhelpers.CommentRepositoryStub{}
	uc := NewCommentUseCase(repo)
	user := &model.User{ID: 1}

	for _, text := range []string{"", "   ", strings.Repeat("x", 2001)} {
		_, err := uc.Post(context.Background(), user, text)
		var verr *domainErrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "text", verr.Field)
	}
	assert.Empty(t, repo.Comments)
}

func TestCommentUseCasePropagatesErrors(t *testing.T) {
	uc := NewCommentUseCase(&testhelpers.CommentRepositoryStub{Err: errors.New("db down")})

	_, err := uc.Post(context.Background(), &model.User{ID: 1}, "hi")
	assert.EqualError(t, err, "db down")
	_, err = uc.List(context.Background())
	assert.EqualError(t, err, "db down")
}
