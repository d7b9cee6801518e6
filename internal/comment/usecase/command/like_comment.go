package command

import (
	"github.com/jingxi/marketplace/internal/comment/domain"
)

// LikeCommentCommand represents the command to like a comment
type LikeCommentCommand struct {
	CommentID uint
}

// LikeCommentHandler handles like comment command
type LikeCommentHandler struct {
	comments domain.CommentRepository
}

// NewLikeCommentHandler creates a new like comment handler
func NewLikeCommentHandler(comments domain.CommentRepository) *LikeCommentHandler {
	return &LikeCommentHandler{comments: comments}
}

// Handle executes the like comment command. The increment is a single
// UPDATE so concurrent likes never lose counts.
func (h *LikeCommentHandler) Handle(cmd LikeCommentCommand) error {
	return h.comments.IncrementLikes(cmd.CommentID)
}
