//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/catalog"
	"github.com/jingxi/marketplace/internal/order/delivery/http"
	"github.com/jingxi/marketplace/internal/order/domain"
	"github.com/jingxi/marketplace/internal/order/repository"
	"github.com/jingxi/marketplace/internal/order/usecase/command"
	"github.com/jingxi/marketplace/internal/user"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	catalog.ProvideProductRepository,
	catalog.ProvideSellerRepository,
	user.ProvideUserRepository,
)

// InitializeHTTPHandler initializes the order HTTP handler
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher, authMiddleware *userhttp.AuthMiddleware) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
