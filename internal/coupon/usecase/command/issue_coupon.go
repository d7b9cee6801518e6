package command

import (
	"errors"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/coupon/domain"
)

// IssueCouponCommand represents the command to issue a seller coupon
type IssueCouponCommand struct {
	SellerID      uint
	DiscountValue float64
	ExpiryDate    time.Time
}

// IssueCouponHandler handles issue coupon command
type IssueCouponHandler struct {
	coupons domain.CouponRepository
	sellers catalogdomain.SellerRepository
}

// NewIssueCouponHandler creates a new issue coupon handler
func NewIssueCouponHandler(coupons domain.CouponRepository, sellers catalogdomain.SellerRepository) *IssueCouponHandler {
	return &IssueCouponHandler{coupons: coupons, sellers: sellers}
}

// Handle executes the issue coupon command
func (h *IssueCouponHandler) Handle(cmd IssueCouponCommand) (*domain.Coupon, error) {
	if cmd.DiscountValue <= 0 {
		return nil, errors.New("discount value must be positive")
	}
	if !cmd.ExpiryDate.After(time.Now()) {
		return nil, errors.New("expiry date must be in the future")
	}

	if _, err := h.sellers.FindByID(cmd.SellerID); err != nil {
		return nil, err
	}

	coupon := &domain.Coupon{
		ID:            uuid.NewString(),
		SellerID:      cmd.SellerID,
		DiscountValue: cmd.DiscountValue,
		ExpiryDate:    cmd.ExpiryDate,
		CreatedAt:     time.Now(),
	}
	if err := h.coupons.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}
