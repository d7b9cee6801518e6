package query

import (
	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/comment/domain"
)

// Pagination defaults for comment listings.
const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// ListProductCommentsQuery represents the query for a product's comments
type ListProductCommentsQuery struct {
	ProductID uint
	Page      int
	Size      int
}

// ListProductCommentsHandler handles the comment listing query
type ListProductCommentsHandler struct {
	comments domain.CommentRepository
	products catalogdomain.ProductRepository
}

// NewListProductCommentsHandler creates a new comment listing handler
func NewListProductCommentsHandler(comments domain.CommentRepository, products catalogdomain.ProductRepository) *ListProductCommentsHandler {
	return &ListProductCommentsHandler{comments: comments, products: products}
}

// Handle executes the comment listing query: likes descending, paginated.
func (h *ListProductCommentsHandler) Handle(query ListProductCommentsQuery) ([]domain.Comment, error) {
	if _, err := h.products.FindByID(query.ProductID); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	comments, err := h.comments.FindByProduct(query.ProductID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	// Empty page is a valid result, not an error.
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}
