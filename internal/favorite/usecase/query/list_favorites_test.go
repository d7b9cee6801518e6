package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

type stubFavoriteRepository struct {
	byUser map[uint][]catalogdomain.Product
}

func (s *stubFavoriteRepository) Create(favorite *domain.Favorite) error { return nil }
func (s *stubFavoriteRepository) Delete(userID, productID uint) error    { return nil }
func (s *stubFavoriteRepository) FindProductsByUser(userID uint) ([]catalogdomain.Product, error) {
	return s.byUser[userID], nil
}
func (s *stubFavoriteRepository) Exists(userID, productID uint) (bool, error) { return false, nil }
func (s *stubFavoriteRepository) CountByUser(userID uint) (int64, error) {
	return int64(len(s.byUser[userID])), nil
}

func TestListFavoritesPreservesOrder(t *testing.T) {
	repo := &stubFavoriteRepository{byUser: map[uint][]catalogdomain.Product{
		1: {
			{ID: 3, Name: "Chair"},
			{ID: 1, Name: "Lamp"},
			{ID: 8, Name: "Desk"},
		},
	}}
	handler := NewListFavoritesHandler(repo)

	products, err := handler.Handle(ListFavoritesQuery{UserID: 1})
	require.NoError(t, err)
	require.Len(t, products, 3)

	// Favorite order, not product id order.
	assert.Equal(t, uint(3), products[0].ID)
	assert.Equal(t, uint(1), products[1].ID)
	assert.Equal(t, uint(8), products[2].ID)
}

func TestListFavoritesEmpty(t *testing.T) {
	repo := &stubFavoriteRepository{byUser: map[uint][]catalogdomain.Product{}}
	handler := NewListFavoritesHandler(repo)

	products, err := handler.Handle(ListFavoritesQuery{UserID: 42})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
