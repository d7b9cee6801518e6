package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// Order statuses. Orders complete immediately: the platform brokers
// contact between buyer and seller, payment happens off-platform.
const (
	StatusCompleted = "completed"
)

// Order records a buyer's intent to purchase a product. The price is
// captured at order time so later product edits do not rewrite history.
type Order struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	SellerID  uint      `json:"seller_id" gorm:"not null;index"`
	Price     float64   `json:"price" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null;default:completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// ContactExchange is what the buyer receives on checkout: both sides'
// contact details so they can arrange the handover directly.
type ContactExchange struct {
	OrderID       string `json:"order_id"`
	Message       string `json:"message"`
	SellerContact string `json:"seller_contact"`
	BuyerContact  string `json:"buyer_contact"`
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id string) (*Order, error)
	// FindByUser returns the user's orders, newest first.
	FindByUser(userID uint) ([]Order, error)
	CountBySeller(sellerID uint) (int64, error)
}
