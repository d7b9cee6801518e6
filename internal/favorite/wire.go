//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/catalog"
	"github.com/jingxi/marketplace/internal/favorite/delivery/http"
	"github.com/jingxi/marketplace/internal/favorite/domain"
	"github.com/jingxi/marketplace/internal/favorite/repository"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	catalog.ProvideProductRepository,
)

// InitializeHTTPHandler initializes the favorite HTTP handler
func InitializeHTTPHandler(db *gorm.DB, authMiddleware *userhttp.AuthMiddleware) (*http.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewFavoriteHandler,
	)
	return nil, nil
}
