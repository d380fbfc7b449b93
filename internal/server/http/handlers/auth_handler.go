package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flowershop/internal/server/http/dto"
	"github.com/polkiloo/flowershop/internal/server/http/middleware"
)

const (
	msgUserExists       = "Error. User with this username or email already exists."
	msgWrongCredentials = "Error. Incorrect email or password."
)

// AuthHandler processes registration, login and logout.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.facade.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch status := statusOf(err); {
	case err == nil:
		respond(c, http.StatusOK, "")
	case status == http.StatusConflict:
		respond(c, status, msgUserExists)
	case status == http.StatusBadRequest:
		respond(c, status, validationMessage(err))
	default:
		respondInternal(c, h.logger, "register", err)
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if statusOf(err) == http.StatusForbidden {
			c.JSON(http.StatusForbidden, dto.LoginResponse{Message: msgWrongCredentials})
			return
		}
		respondInternal(c, h.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Token: token})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.facade.Logout(c.Request.Context(), middleware.SessionToken(c))
	switch {
	case err == nil:
		respond(c, http.StatusOK, "")
	case statusOf(err) == http.StatusForbidden:
		respond(c, http.StatusForbidden, middleware.MessageIncorrectToken)
	default:
		respondInternal(c, h.logger, "logout", err)
	}
}
