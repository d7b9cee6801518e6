package command

import (
	"fmt"
	"time"

	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// PublishProductCommand represents the command to publish a product
type PublishProductCommand struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
	SellerID    uint
}

// PublishProductHandler handles product publishing command
type PublishProductHandler struct {
	products domain.ProductRepository
	sellers  domain.SellerRepository
}

// NewPublishProductHandler creates a new publish product handler
func NewPublishProductHandler(products domain.ProductRepository, sellers domain.SellerRepository) *PublishProductHandler {
	return &PublishProductHandler{products: products, sellers: sellers}
}

// Handle executes the publish product command. The seller must exist.
func (h *PublishProductHandler) Handle(cmd PublishProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	if _, err := h.sellers.FindByID(cmd.SellerID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		ImageURL:    cmd.ImageURL,
		SellerID:    cmd.SellerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.products.Create(product); err != nil {
		return nil, err
	}

	return product, nil
}
