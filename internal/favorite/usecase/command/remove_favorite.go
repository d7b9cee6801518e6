package command

import (
	"fmt"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

// RemoveFavoriteCommand represents the command to unfavorite a product
type RemoveFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	favorites domain.FavoriteRepository
	products  catalogdomain.ProductRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(favorites domain.FavoriteRepository, products catalogdomain.ProductRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites, products: products}
}

// Handle executes the remove favorite command. The product must exist;
// given that, removal is idempotent and unfavoriting a product that was
// never favorited succeeds quietly.
func (h *RemoveFavoriteHandler) Handle(cmd RemoveFavoriteCommand) error {
	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return fmt.Errorf("failed to find product: %w", err)
	}

	return h.favorites.Delete(cmd.UserID, cmd.ProductID)
}
