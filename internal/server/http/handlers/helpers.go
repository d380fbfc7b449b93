package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
	"github.com/polkiloo/flowershop/internal/server/http/middleware"
)

const msgInvalidBody = "Error. Invalid request body."

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// statusOf maps a domain error onto the HTTP status it is reported with.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respond(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{Success: status < http.StatusBadRequest, Message: message})
}

// respondInternal logs err and answers with a generic 500 envelope.
func respondInternal(c *gin.Context, logger *slog.Logger, operation string, err error) {
	logger.Error(operation+" failed",
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	respond(c, http.StatusInternalServerError, middleware.MessageInternalError)
}

// validationMessage renders a ValidationError for clients.
func validationMessage(err error) string {
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return "Error. Field " + verr.Field + " " + verr.Reason + "."
	}
	return "Error. Invalid input."
}
