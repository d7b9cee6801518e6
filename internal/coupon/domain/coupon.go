package domain

import (
	"errors"
	"time"
)

var ErrCouponNotFound = errors.New("coupon not found")

// Coupon is a seller-issued discount. Expired coupons stay on record
// but are filtered from active listings.
type Coupon struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	SellerID      uint      `json:"seller_id" gorm:"not null;index"`
	DiscountValue float64   `json:"discount_value" gorm:"not null"`
	ExpiryDate    time.Time `json:"expiry_date" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Coupon) TableName() string {
	return "coupons"
}

// Active reports whether the coupon is still usable at the given time.
func (c *Coupon) Active(now time.Time) bool {
	return c.ExpiryDate.After(now)
}

// CouponRepository defines the contract for coupon data access
type CouponRepository interface {
	Create(coupon *Coupon) error
	FindByID(id string) (*Coupon, error)
	// FindBySeller returns a seller's coupons, soonest expiry first.
	// When activeOnly is set, expired coupons are omitted.
	FindBySeller(sellerID uint, activeOnly bool) ([]Coupon, error)
}
