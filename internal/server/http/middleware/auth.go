package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
)

const (
	// UserContextKey is a gin context key for the authenticated *model.User.
	UserContextKey = "user"
	// TokenHeader carries the session token on every authenticated request.
	TokenHeader = "token"

	MessageIncorrectToken = "Error. Incorrect token."
	MessageInternalError  = "Error. Internal server error."
)

// TokenResolver maps a session token to its owner.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// TokenRequired resolves the session token and stores the user in the context.
// Unresolved tokens are answered with 403.
func TokenRequired(resolver TokenResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request.Context(), SessionToken(c))
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail(MessageIncorrectToken))
				return
			}
			logger.Error("resolve session failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(MessageInternalError))
			return
		}
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// SessionToken returns the raw token header value.
func SessionToken(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(TokenHeader))
}
