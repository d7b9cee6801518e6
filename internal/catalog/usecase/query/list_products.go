package query

import (
	"fmt"

	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	SortBy string // "", "price_asc" or "price_desc"
	Limit  int
	Offset int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	products domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.Product, error) {
	switch query.SortBy {
	case "", domain.SortPriceAsc, domain.SortPriceDesc:
	default:
		return nil, fmt.Errorf("invalid sort option: %s", query.SortBy)
	}

	return h.products.FindAll(query.SortBy, query.Limit, query.Offset)
}
