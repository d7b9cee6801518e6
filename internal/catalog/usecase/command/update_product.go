package command

import (
	"fmt"
	"time"

	"github.com/jingxi/marketplace/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Price       float64
	Description string
	ImageURL    string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	products domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products}
}

// Handle executes the update product command. Zero-valued fields keep
// their current value.
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.products.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if cmd.Price != 0 {
		if cmd.Price < 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		product.Price = cmd.Price
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}
	if cmd.ImageURL != "" {
		product.ImageURL = cmd.ImageURL
	}
	product.UpdatedAt = time.Now()

	if err := h.products.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}
