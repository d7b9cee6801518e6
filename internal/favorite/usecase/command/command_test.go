package command

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

type pair struct {
	userID    uint
	productID uint
}

// mockFavoriteRepository enforces the same pair uniqueness the real
// database index does.
type mockFavoriteRepository struct {
	favorites map[pair]*domain.Favorite
	nextID    uint
	products  *mockProductRepository
}

func newMockFavoriteRepository(products *mockProductRepository) *mockFavoriteRepository {
	return &mockFavoriteRepository{
		favorites: make(map[pair]*domain.Favorite),
		nextID:    1,
		products:  products,
	}
}

func (m *mockFavoriteRepository) Create(favorite *domain.Favorite) error {
	key := pair{favorite.UserID, favorite.ProductID}
	if _, exists := m.favorites[key]; exists {
		return domain.ErrAlreadyFavorited
	}
	favorite.ID = m.nextID
	m.nextID++
	m.favorites[key] = favorite
	return nil
}

func (m *mockFavoriteRepository) Delete(userID, productID uint) error {
	delete(m.favorites, pair{userID, productID})
	return nil
}

func (m *mockFavoriteRepository) FindProductsByUser(userID uint) ([]catalogdomain.Product, error) {
	var favs []*domain.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].ID < favs[j].ID })

	var out []catalogdomain.Product
	for _, f := range favs {
		if p, err := m.products.FindByID(f.ProductID); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockFavoriteRepository) Exists(userID, productID uint) (bool, error) {
	_, ok := m.favorites[pair{userID, productID}]
	return ok, nil
}

func (m *mockFavoriteRepository) CountByUser(userID uint) (int64, error) {
	var n int64
	for _, f := range m.favorites {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

type mockProductRepository struct {
	products map[uint]*catalogdomain.Product
}

func newMockProductRepository(products ...*catalogdomain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[uint]*catalogdomain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) Create(product *catalogdomain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(id uint) (*catalogdomain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, catalogdomain.ErrProductNotFound
}

func (m *mockProductRepository) FindAll(sortBy string, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) FindBySeller(sellerID uint, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) FindNewest(limit int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) Update(product *catalogdomain.Product) error { return nil }
func (m *mockProductRepository) Delete(id uint) error                        { return nil }
func (m *mockProductRepository) Count() (int64, error) {
	return int64(len(m.products)), nil
}

func TestAddFavorite(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", Price: 12.5, SellerID: 1})
	favorites := newMockFavoriteRepository(products)
	handler := NewAddFavoriteHandler(favorites, products)

	fav, err := handler.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint(1), fav.UserID)
	assert.Equal(t, uint(7), fav.ProductID)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	products := newMockProductRepository()
	favorites := newMockFavoriteRepository(products)
	handler := NewAddFavoriteHandler(favorites, products)

	_, err := handler.Handle(AddFavoriteCommand{UserID: 1, ProductID: 99})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestAddFavoriteDuplicate(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", SellerID: 1})
	favorites := newMockFavoriteRepository(products)
	handler := NewAddFavoriteHandler(favorites, products)

	_, err := handler.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	require.NoError(t, err)

	_, err = handler.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	count, err := favorites.CountByUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "duplicate add must not create a second row")
}

func TestAddFavoriteSameProductDifferentUsers(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", SellerID: 1})
	favorites := newMockFavoriteRepository(products)
	handler := NewAddFavoriteHandler(favorites, products)

	_, err := handler.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	require.NoError(t, err)
	_, err = handler.Handle(AddFavoriteCommand{UserID: 2, ProductID: 7})
	require.NoError(t, err)
}

func TestRemoveFavoriteIdempotent(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", SellerID: 1})
	favorites := newMockFavoriteRepository(products)

	add := NewAddFavoriteHandler(favorites, products)
	remove := NewRemoveFavoriteHandler(favorites, products)

	_, err := add.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	require.NoError(t, err)

	require.NoError(t, remove.Handle(RemoveFavoriteCommand{UserID: 1, ProductID: 7}))
	// Removing an existing product again succeeds even though nothing
	// was favorited anymore.
	require.NoError(t, remove.Handle(RemoveFavoriteCommand{UserID: 1, ProductID: 7}))

	exists, err := favorites.Exists(1, 7)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoveFavoriteUnknownProduct(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", SellerID: 1})
	favorites := newMockFavoriteRepository(products)
	remove := NewRemoveFavoriteHandler(favorites, products)

	// Idempotency covers absent pairs, not absent products.
	err := remove.Handle(RemoveFavoriteCommand{UserID: 1, ProductID: 12345})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestRemoveFavoriteOnlyOwnPair(t *testing.T) {
	products := newMockProductRepository(&catalogdomain.Product{ID: 7, Name: "Lamp", SellerID: 1})
	favorites := newMockFavoriteRepository(products)

	add := NewAddFavoriteHandler(favorites, products)
	remove := NewRemoveFavoriteHandler(favorites, products)

	_, err := add.Handle(AddFavoriteCommand{UserID: 1, ProductID: 7})
	require.NoError(t, err)
	_, err = add.Handle(AddFavoriteCommand{UserID: 2, ProductID: 7})
	require.NoError(t, err)

	require.NoError(t, remove.Handle(RemoveFavoriteCommand{UserID: 1, ProductID: 7}))

	exists, err := favorites.Exists(2, 7)
	require.NoError(t, err)
	assert.True(t, exists, "another user's favorite must be untouched")
}
