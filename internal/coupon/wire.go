//go:build wireinject
// +build wireinject

package coupon

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/catalog"
	"github.com/jingxi/marketplace/internal/coupon/delivery/http"
	"github.com/jingxi/marketplace/internal/coupon/domain"
	"github.com/jingxi/marketplace/internal/coupon/repository"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// ProvideCouponRepository provides the coupon repository
func ProvideCouponRepository(db *gorm.DB) domain.CouponRepository {
	return repository.NewGormCouponRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideCouponRepository,
	catalog.ProvideSellerRepository,
)

// InitializeHTTPHandler initializes the coupon HTTP handler
func InitializeHTTPHandler(db *gorm.DB, authMiddleware *userhttp.AuthMiddleware) (*http.CouponHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCouponHandler,
	)
	return nil, nil
}
