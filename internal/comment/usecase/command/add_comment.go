package command

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/comment/domain"
)

// AddCommentCommand represents the command to comment on a product
type AddCommentCommand struct {
	Content   string
	UserID    uint
	Username  string
	ProductID uint
}

// AddCommentHandler handles add comment command
type AddCommentHandler struct {
	comments  domain.CommentRepository
	products  catalogdomain.ProductRepository
	sanitizer *bluemonday.Policy
}

// NewAddCommentHandler creates a new add comment handler. Comment
// content is stripped of all HTML before storage.
func NewAddCommentHandler(comments domain.CommentRepository, products catalogdomain.ProductRepository) *AddCommentHandler {
	return &AddCommentHandler{
		comments:  comments,
		products:  products,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Handle executes the add comment command
func (h *AddCommentHandler) Handle(cmd AddCommentCommand) (*domain.Comment, error) {
	content := strings.TrimSpace(h.sanitizer.Sanitize(cmd.Content))

	length := utf8.RuneCountInString(content)
	if length < domain.MinContentLength {
		return nil, fmt.Errorf("comment must be at least %d characters", domain.MinContentLength)
	}
	if length > domain.MaxContentLength {
		return nil, fmt.Errorf("comment must be at most %d characters", domain.MaxContentLength)
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:   content,
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		CreatedAt: time.Now(),
		Username:  cmd.Username,
	}

	if err := h.comments.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}
