package command

import (
	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

// AddFavoriteCommand represents the command to favorite a product. The
// user id always comes from the authenticated caller, never from the
// request body.
type AddFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	favorites domain.FavoriteRepository
	products  catalogdomain.ProductRepository
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(favorites domain.FavoriteRepository, products catalogdomain.ProductRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{favorites: favorites, products: products}
}

// Handle executes the add favorite command. There is no existence
// pre-check on the pair: the insert itself decides, so two concurrent
// adds of the same pair end with exactly one row.
func (h *AddFavoriteHandler) Handle(cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	favorite := &domain.Favorite{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
	}
	if err := h.favorites.Create(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}
