package query

import (
	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// DefaultRecommendationSize is how many products the recommendation
// endpoint returns when no size is requested.
const DefaultRecommendationSize = 10

// ListRecommendedQuery represents the query for recommended products.
// The recommendation is a stub: the newest listings, capped at Limit.
type ListRecommendedQuery struct {
	Limit int
}

// ListRecommendedHandler handles the recommendation query
type ListRecommendedHandler struct {
	products domain.ProductRepository
}

// NewListRecommendedHandler creates a new recommendation handler
func NewListRecommendedHandler(products domain.ProductRepository) *ListRecommendedHandler {
	return &ListRecommendedHandler{products: products}
}

// Handle executes the recommendation query
func (h *ListRecommendedHandler) Handle(query ListRecommendedQuery) ([]domain.Product, error) {
	limit := query.Limit
	if limit <= 0 || limit > DefaultRecommendationSize {
		limit = DefaultRecommendationSize
	}

	return h.products.FindNewest(limit)
}
