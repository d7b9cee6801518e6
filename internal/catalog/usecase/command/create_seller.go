package command

import (
	"fmt"
	"time"

	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// CreateSellerCommand represents the command to create a seller
type CreateSellerCommand struct {
	ShopName    string
	ContactInfo string
}

// CreateSellerHandler handles seller creation command
type CreateSellerHandler struct {
	sellers domain.SellerRepository
}

// NewCreateSellerHandler creates a new create seller handler
func NewCreateSellerHandler(sellers domain.SellerRepository) *CreateSellerHandler {
	return &CreateSellerHandler{sellers: sellers}
}

// Handle executes the create seller command
func (h *CreateSellerHandler) Handle(cmd CreateSellerCommand) (*domain.Seller, error) {
	if cmd.ShopName == "" {
		return nil, fmt.Errorf("shop name is required")
	}

	seller := &domain.Seller{
		ShopName:    cmd.ShopName,
		ContactInfo: cmd.ContactInfo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.sellers.Create(seller); err != nil {
		return nil, err
	}

	return seller, nil
}
