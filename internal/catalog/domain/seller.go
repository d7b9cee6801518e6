package domain

import "time"

// Seller represents a shop that publishes products and exchanges
// contact info with buyers when a deal is reached.
type Seller struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ShopName    string    `json:"shop_name" gorm:"not null"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Seller) TableName() string {
	return "sellers"
}

// SellerRepository defines the contract for seller data access
type SellerRepository interface {
	Create(seller *Seller) error
	FindByID(id uint) (*Seller, error)
	Count() (int64, error)
}
