package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flowershop/internal/server/http/dto"
	"github.com/polkiloo/flowershop/internal/server/http/middleware"
)

// CommentHandler serves the comment wall.
type CommentHandler struct {
	facade CommentFacade
	logger *slog.Logger
}

// NewCommentHandler constructs CommentHandler.
func NewCommentHandler(facade CommentFacade, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{facade: facade, logger: logger}
}

// List handles GET /api/comments.
func (h *CommentHandler) List(c *gin.Context) {
	response := make([]dto.CommentResponse, 0)

	comments, err := h.facade.Comments(c.Request.Context())
	if err != nil {
		h.logger.Error("list comments failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.DataResponse{Data: response, Message: middleware.MessageInternalError})
		return
	}

	for _, cm := range comments {
		response = append(response, dto.NewCommentResponse(cm))
	}
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: response})
}

// Create handles POST /api/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.facade.PostComment(c.Request.Context(), CurrentUser(c), req.Text)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "")
	case statusOf(err) == http.StatusBadRequest:
		respond(c, http.StatusBadRequest, validationMessage(err))
	default:
		respondInternal(c, h.logger, "post comment", err)
	}
}
