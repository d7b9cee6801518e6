package query

import (
	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/coupon/domain"
)

// ListSellerCouponsQuery represents the query for a seller's coupons
type ListSellerCouponsQuery struct {
	SellerID   uint
	ActiveOnly bool
}

// ListSellerCouponsHandler handles the coupon listing query
type ListSellerCouponsHandler struct {
	coupons domain.CouponRepository
	sellers catalogdomain.SellerRepository
}

// NewListSellerCouponsHandler creates a new coupon listing handler
func NewListSellerCouponsHandler(coupons domain.CouponRepository, sellers catalogdomain.SellerRepository) *ListSellerCouponsHandler {
	return &ListSellerCouponsHandler{coupons: coupons, sellers: sellers}
}

// Handle executes the coupon listing query
func (h *ListSellerCouponsHandler) Handle(query ListSellerCouponsQuery) ([]domain.Coupon, error) {
	if _, err := h.sellers.FindByID(query.SellerID); err != nil {
		return nil, err
	}

	coupons, err := h.coupons.FindBySeller(query.SellerID, query.ActiveOnly)
	if err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []domain.Coupon{}
	}
	return coupons, nil
}
