package query

import (
	"github.com/jingxi/marketplace/internal/order/domain"
)

// ListMyOrdersQuery represents the query for a user's own orders
type ListMyOrdersQuery struct {
	UserID uint
}

// ListMyOrdersHandler handles the order listing query
type ListMyOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListMyOrdersHandler creates a new order listing handler
func NewListMyOrdersHandler(orders domain.OrderRepository) *ListMyOrdersHandler {
	return &ListMyOrdersHandler{orders: orders}
}

// Handle executes the order listing query, newest first.
func (h *ListMyOrdersHandler) Handle(query ListMyOrdersQuery) ([]domain.Order, error) {
	orders, err := h.orders.FindByUser(query.UserID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
