package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/order/domain"
	userdomain "github.com/jingxi/marketplace/internal/user/domain"
	"github.com/jingxi/marketplace/kafka"
	"github.com/jingxi/marketplace/pkg/logger"
)

// EventPublisher publishes order events. Nil-able: when the broker is
// down or disabled, orders still complete.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
}

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	UserID    uint
	ProductID uint
}

// PlaceOrderResult bundles the stored order with the contact exchange
// returned to the buyer.
type PlaceOrderResult struct {
	Order   *domain.Order          `json:"order"`
	Contact domain.ContactExchange `json:"contact"`
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	orders    domain.OrderRepository
	products  catalogdomain.ProductRepository
	sellers   catalogdomain.SellerRepository
	users     userdomain.UserRepository
	publisher EventPublisher
}

// NewPlaceOrderHandler creates a new place order handler. publisher may
// be nil when event publishing is disabled.
func NewPlaceOrderHandler(
	orders domain.OrderRepository,
	products catalogdomain.ProductRepository,
	sellers catalogdomain.SellerRepository,
	users userdomain.UserRepository,
	publisher EventPublisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:    orders,
		products:  products,
		sellers:   sellers,
		users:     users,
		publisher: publisher,
	}
}

// Handle executes the place order command. The order captures the
// product's current price, then both parties' contact details are
// returned so they can settle directly.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	product, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	seller, err := h.sellers.FindByID(product.SellerID)
	if err != nil {
		return nil, err
	}

	buyer, err := h.users.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    buyer.ID,
		ProductID: product.ID,
		SellerID:  seller.ID,
		Price:     product.Price,
		Status:    domain.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := h.orders.Create(order); err != nil {
		return nil, err
	}

	// Publishing is best effort: the order is already stored, a broker
	// outage must not roll it back.
	if h.publisher != nil {
		event := kafka.OrderPlacedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			ProductID: order.ProductID,
			SellerID:  order.SellerID,
			Price:     order.Price,
		}
		if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("order_id", order.ID).
				Msg("Order stored but event publish failed")
		}
	}

	return &PlaceOrderResult{
		Order: order,
		Contact: domain.ContactExchange{
			OrderID:       order.ID,
			Message:       "Order placed. Reach out to the seller to arrange delivery.",
			SellerContact: seller.ContactInfo,
			BuyerContact:  buyer.ContactInfo,
		},
	}, nil
}
