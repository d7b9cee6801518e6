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
	"github.com/jingxi/marketplace/internal/coupon/domain"
	"github.com/jingxi/marketplace/internal/coupon/usecase/command"
	"github.com/jingxi/marketplace/internal/coupon/usecase/query"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// CouponHandler handles HTTP requests for seller coupons
type CouponHandler struct {
	issueHandler *command.IssueCouponHandler
	listHandler  *query.ListSellerCouponsHandler

	authMiddleware *userhttp.AuthMiddleware
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(coupons domain.CouponRepository, sellers catalogdomain.SellerRepository, authMiddleware *userhttp.AuthMiddleware) *CouponHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_coupon_requests_total",
			Help: "Total number of requests to coupon endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_coupon_request_duration_seconds",
			Help:    "Duration of coupon endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CouponHandler{
		issueHandler:   command.NewIssueCouponHandler(coupons, sellers),
		listHandler:    query.NewListSellerCouponsHandler(coupons, sellers),
		authMiddleware: authMiddleware,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *CouponHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// IssueCoupon handles POST /sellers/{id}/coupons (admin only)
func (h *CouponHandler) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	sellerID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	var req struct {
		DiscountValue float64   `json:"discount_value"`
		ExpiryDate    time.Time `json:"expiry_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := h.issueHandler.Handle(command.IssueCouponCommand{
		SellerID:      sellerID,
		DiscountValue: req.DiscountValue,
		ExpiryDate:    req.ExpiryDate,
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrSellerNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, coupon)
}

// ListCoupons handles GET /sellers/{id}/coupons
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	sellerID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	coupons, err := h.listHandler.Handle(query.ListSellerCouponsQuery{
		SellerID:   sellerID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrSellerNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, coupons)
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *CouponHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CouponHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all coupon routes
func (h *CouponHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sellers/{id}/coupons", h.metricsMiddleware("/sellers/{id}/coupons", h.authMiddleware.RequireAdmin(h.IssueCoupon))).Methods("POST")
	router.HandleFunc("/sellers/{id}/coupons", h.metricsMiddleware("/sellers/{id}/coupons", h.ListCoupons)).Methods("GET")
}
