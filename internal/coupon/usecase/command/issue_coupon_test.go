package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/coupon/domain"
)

type stubSellerRepository struct {
	known map[uint]bool
}

func (s *stubSellerRepository) Create(seller *catalogdomain.Seller) error { return nil }
func (s *stubSellerRepository) FindByID(id uint) (*catalogdomain.Seller, error) {
	if s.known[id] {
		return &catalogdomain.Seller{ID: id}, nil
	}
	return nil, catalogdomain.ErrSellerNotFound
}
func (s *stubSellerRepository) Count() (int64, error) { return 0, nil }

type memoryCouponRepository struct {
	coupons []*domain.Coupon
}

func (m *memoryCouponRepository) Create(coupon *domain.Coupon) error {
	m.coupons = append(m.coupons, coupon)
	return nil
}

func (m *memoryCouponRepository) FindByID(id string) (*domain.Coupon, error) {
	for _, c := range m.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (m *memoryCouponRepository) FindBySeller(sellerID uint, activeOnly bool) ([]domain.Coupon, error) {
	var out []domain.Coupon
	for _, c := range m.coupons {
		if c.SellerID != sellerID {
			continue
		}
		if activeOnly && !c.Active(time.Now()) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func TestIssueCoupon(t *testing.T) {
	coupons := &memoryCouponRepository{}
	sellers := &stubSellerRepository{known: map[uint]bool{3: true}}
	handler := NewIssueCouponHandler(coupons, sellers)

	coupon, err := handler.Handle(IssueCouponCommand{
		SellerID:      3,
		DiscountValue: 15,
		ExpiryDate:    time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, coupon.ID)
	assert.Equal(t, uint(3), coupon.SellerID)
	assert.True(t, coupon.Active(time.Now()))
	assert.Len(t, coupons.coupons, 1)
}

func TestIssueCouponValidation(t *testing.T) {
	coupons := &memoryCouponRepository{}
	sellers := &stubSellerRepository{known: map[uint]bool{3: true}}
	handler := NewIssueCouponHandler(coupons, sellers)

	future := time.Now().Add(time.Hour)

	_, err := handler.Handle(IssueCouponCommand{SellerID: 3, DiscountValue: 0, ExpiryDate: future})
	assert.Error(t, err, "zero discount")

	_, err = handler.Handle(IssueCouponCommand{SellerID: 3, DiscountValue: -5, ExpiryDate: future})
	assert.Error(t, err, "negative discount")

	_, err = handler.Handle(IssueCouponCommand{
		SellerID:      3,
		DiscountValue: 10,
		ExpiryDate:    time.Now().Add(-time.Minute),
	})
	assert.Error(t, err, "expiry in the past")

	_, err = handler.Handle(IssueCouponCommand{SellerID: 99, DiscountValue: 10, ExpiryDate: future})
	assert.ErrorIs(t, err, catalogdomain.ErrSellerNotFound)

	assert.Empty(t, coupons.coupons)
}
