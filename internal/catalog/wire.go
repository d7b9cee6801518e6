//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/jingxi/marketplace/internal/catalog/delivery/http"
	"github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/catalog/repository"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormCatalogRepository(db)
}

// ProvideSellerRepository provides the seller repository
func ProvideSellerRepository(db *gorm.DB) domain.SellerRepository {
	return repository.NewGormSellerRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideSellerRepository,
)

// InitializeHTTPHandler initializes the catalog HTTP handler
func InitializeHTTPHandler(db *gorm.DB, authMiddleware *userhttp.AuthMiddleware) (*httpDelivery.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewCatalogHandler,
	)
	return nil, nil
}
