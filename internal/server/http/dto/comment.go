package dto

import "github.com/polkiloo/flowershop/internal/domain/model"

// CommentRequest describes a new comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is a published comment with its author.
type CommentResponse struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

// NewCommentResponse converts a domain comment.
func NewCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, Username: c.Username}
}
