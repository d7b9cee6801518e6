package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/coupon/domain"
)

// GormCouponRepository implements CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Coupon{})
}

func (r *GormCouponRepository) Create(coupon *domain.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *GormCouponRepository) FindByID(id string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := r.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &coupon, nil
}

func (r *GormCouponRepository) FindBySeller(sellerID uint, activeOnly bool) ([]domain.Coupon, error) {
	query := r.db.Where("seller_id = ?", sellerID)
	if activeOnly {
		query = query.Where("expiry_date > ?", time.Now())
	}

	var coupons []domain.Coupon
	if err := query.Order("expiry_date ASC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}
