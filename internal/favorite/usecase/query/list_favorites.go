package query

import (
	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

// ListFavoritesQuery represents the query for a user's favorites
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles the favorites listing query
type ListFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new favorites listing handler
func NewListFavoritesHandler(favorites domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{favorites: favorites}
}

// Handle executes the favorites listing query, returning the favorited
// products in the order they were added. A user with no favorites gets
// an empty list, not an error.
func (h *ListFavoritesHandler) Handle(query ListFavoritesQuery) ([]catalogdomain.Product, error) {
	products, err := h.favorites.FindProductsByUser(query.UserID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalogdomain.Product{}
	}
	return products, nil
}
