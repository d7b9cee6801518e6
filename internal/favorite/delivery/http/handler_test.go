package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
	userdomain "github.com/jingxi/marketplace/internal/user/domain"
	"github.com/jingxi/marketplace/pkg/auth"
)

type fakeUserRepository struct {
	users map[uint]*userdomain.User
}

func (f *fakeUserRepository) Create(user *userdomain.User) error { return nil }
func (f *fakeUserRepository) FindByID(id uint) (*userdomain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, userdomain.ErrUserNotFound
}
func (f *fakeUserRepository) FindByUsername(username string) (*userdomain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}
func (f *fakeUserRepository) FindAll(limit, offset int) ([]userdomain.User, error) { return nil, nil }
func (f *fakeUserRepository) FindByRole(role string, limit, offset int) ([]userdomain.User, error) {
	return nil, nil
}
func (f *fakeUserRepository) Update(user *userdomain.User) error     { return nil }
func (f *fakeUserRepository) Count() (int64, error)                  { return 0, nil }
func (f *fakeUserRepository) CountByRole(role string) (int64, error) { return 0, nil }

type fakeProductRepository struct {
	products map[uint]*catalogdomain.Product
}

func (f *fakeProductRepository) Create(product *catalogdomain.Product) error { return nil }
func (f *fakeProductRepository) FindByID(id uint) (*catalogdomain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, catalogdomain.ErrProductNotFound
}
func (f *fakeProductRepository) FindAll(sortBy string, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepository) FindBySeller(sellerID uint, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepository) FindNewest(limit int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepository) Update(product *catalogdomain.Product) error { return nil }
func (f *fakeProductRepository) Delete(id uint) error                        { return nil }
func (f *fakeProductRepository) Count() (int64, error)                       { return 0, nil }

type pairKey struct{ userID, productID uint }

type fakeFavoriteRepository struct {
	mu        sync.Mutex
	favorites map[pairKey]*domain.Favorite
	products  *fakeProductRepository
	nextID    uint
}

func (f *fakeFavoriteRepository) Create(favorite *domain.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{favorite.UserID, favorite.ProductID}
	if _, exists := f.favorites[key]; exists {
		return domain.ErrAlreadyFavorited
	}
	f.nextID++
	favorite.ID = f.nextID
	favorite.CreatedAt = time.Now()
	f.favorites[key] = favorite
	return nil
}

func (f *fakeFavoriteRepository) Delete(userID, productID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites, pairKey{userID, productID})
	return nil
}

func (f *fakeFavoriteRepository) FindProductsByUser(userID uint) ([]catalogdomain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalogdomain.Product
	for id := uint(1); id <= f.nextID; id++ {
		for key, fav := range f.favorites {
			if fav.ID == id && key.userID == userID {
				if p, err := f.products.FindByID(key.productID); err == nil {
					out = append(out, *p)
				}
			}
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepository) Exists(userID, productID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.favorites[pairKey{userID, productID}]
	return ok, nil
}

func (f *fakeFavoriteRepository) CountByUser(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key := range f.favorites {
		if key.userID == userID {
			n++
		}
	}
	return n, nil
}

// The handler registers prometheus collectors, so it is built once for
// the whole test binary.
var (
	setupOnce     sync.Once
	testRouter    *mux.Router
	testTokens    *auth.TokenManager
	testFavorites *fakeFavoriteRepository
)

func setup(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		tokens, err := auth.NewTokenManager("handler-test-secret", time.Hour)
		if err != nil {
			t.Fatalf("token manager: %v", err)
		}
		testTokens = tokens

		users := &fakeUserRepository{users: map[uint]*userdomain.User{
			1: {ID: 1, Username: "alice", Role: userdomain.RoleCustomer, IsActive: true},
			2: {ID: 2, Username: "bob", Role: userdomain.RoleCustomer, IsActive: true},
		}}
		products := &fakeProductRepository{products: map[uint]*catalogdomain.Product{
			10: {ID: 10, Name: "Lamp", Price: 25, SellerID: 1},
			11: {ID: 11, Name: "Chair", Price: 80, SellerID: 1},
		}}
		testFavorites = &fakeFavoriteRepository{
			favorites: make(map[pairKey]*domain.Favorite),
			products:  products,
		}

		authMiddleware := userhttp.NewAuthMiddleware(tokens, users)
		handler := NewFavoriteHandler(testFavorites, products, authMiddleware)

		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter)
	})
}

func bearerFor(t *testing.T, userID uint, username string) string {
	t.Helper()
	token, err := testTokens.Generate(userID, username, userdomain.RoleCustomer)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(method, target, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestFavoritesRequireAuthentication(t *testing.T) {
	setup(t)

	rec := doRequest(http.MethodGet, "/users/favorites", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(http.MethodPost, "/users/favorites/10", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFavoriteFlow(t *testing.T) {
	setup(t)
	alice := bearerFor(t, 1, "alice")

	// Add two favorites.
	rec := doRequest(http.MethodPost, "/users/favorites/11", alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(http.MethodPost, "/users/favorites/10", alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate add conflicts.
	rec = doRequest(http.MethodPost, "/users/favorites/11", alice)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// List preserves the order favorites were added.
	rec = doRequest(http.MethodGet, "/users/favorites", alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []catalogdomain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Chair", products[0].Name)
	assert.Equal(t, "Lamp", products[1].Name)

	// Remove is idempotent.
	rec = doRequest(http.MethodDelete, "/users/favorites/11", alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(http.MethodDelete, "/users/favorites/11", alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(http.MethodGet, "/users/favorites", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	products = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Lamp", products[0].Name)
}

func TestFavoriteIdentityComesFromToken(t *testing.T) {
	setup(t)
	bob := bearerFor(t, 2, "bob")

	rec := doRequest(http.MethodPost, "/users/favorites/10", bob)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Bob's list only shows bob's favorites.
	rec = doRequest(http.MethodGet, "/users/favorites", bob)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []catalogdomain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	for _, p := range products {
		assert.Equal(t, "Lamp", p.Name)
	}

	exists, err := testFavorites.Exists(2, 10)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoriteUnknownProduct(t *testing.T) {
	setup(t)
	alice := bearerFor(t, 1, "alice")

	rec := doRequest(http.MethodPost, "/users/favorites/999", alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Removal is idempotent for absent pairs, but an unknown product id
	// is still a 404, not a silent no-op.
	rec = doRequest(http.MethodDelete, "/users/favorites/999", alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoriteInvalidProductID(t *testing.T) {
	setup(t)
	alice := bearerFor(t, 1, "alice")

	rec := doRequest(http.MethodPost, "/users/favorites/abc", alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
