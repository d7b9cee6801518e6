package query

import (
	"fmt"

	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// GetSellerQuery represents the query to get a seller by ID
type GetSellerQuery struct {
	ID uint
}

// GetSellerHandler handles get seller query
type GetSellerHandler struct {
	sellers domain.SellerRepository
}

// NewGetSellerHandler creates a new get seller handler
func NewGetSellerHandler(sellers domain.SellerRepository) *GetSellerHandler {
	return &GetSellerHandler{sellers: sellers}
}

// Handle executes the get seller query
func (h *GetSellerHandler) Handle(query GetSellerQuery) (*domain.Seller, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("invalid seller id")
	}

	return h.sellers.FindByID(query.ID)
}
