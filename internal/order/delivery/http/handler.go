package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/order/domain"
	"github.com/jingxi/marketplace/internal/order/usecase/command"
	"github.com/jingxi/marketplace/internal/order/usecase/query"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
	userdomain "github.com/jingxi/marketplace/internal/user/domain"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	placeHandler *command.PlaceOrderHandler
	listHandler  *query.ListMyOrdersHandler

	authMiddleware *userhttp.AuthMiddleware
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orders domain.OrderRepository,
	products catalogdomain.ProductRepository,
	sellers catalogdomain.SellerRepository,
	users userdomain.UserRepository,
	publisher command.EventPublisher,
	authMiddleware *userhttp.AuthMiddleware,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_order_requests_total",
			Help: "Total number of requests to order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_order_request_duration_seconds",
			Help:    "Duration of order endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &OrderHandler{
		placeHandler:   command.NewPlaceOrderHandler(orders, products, sellers, users, publisher),
		listHandler:    query.NewListMyOrdersHandler(orders),
		authMiddleware: authMiddleware,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		ordersPlaced:   ordersPlaced,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == 0 {
		h.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	result, err := h.placeHandler.Handle(r.Context(), command.PlaceOrderCommand{
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrProductNotFound),
			errors.Is(err, catalogdomain.ErrSellerNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.ordersPlaced.Inc()
	h.respondJSON(w, http.StatusCreated, result)
}

// ListMyOrders handles GET /orders/my
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.listHandler.Handle(query.ListMyOrdersQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *OrderHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	auth := h.authMiddleware.Authenticate
	router.HandleFunc("/orders", h.metricsMiddleware("/orders", auth(h.PlaceOrder))).Methods("POST")
	router.HandleFunc("/orders/my", h.metricsMiddleware("/orders/my", auth(h.ListMyOrders))).Methods("GET")
}
