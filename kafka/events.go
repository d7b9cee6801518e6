package kafka

import "time"

// OrderPlacedEvent represents a completed order, consumed by the
// seller notification worker.
type OrderPlacedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	SellerID  uint      `json:"seller_id"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// Kafka topics
const (
	TopicOrderPlaced = "order-placed"
)
