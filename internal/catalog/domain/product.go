package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Sort options for product listings.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSellerNotFound  = errors.New("seller not found")
)

// Product represents a catalog listing published by a seller.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	SellerID    uint           `json:"seller_id" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(sortBy string, limit, offset int) ([]Product, error)
	FindBySeller(sellerID uint, limit, offset int) ([]Product, error)
	FindNewest(limit int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
