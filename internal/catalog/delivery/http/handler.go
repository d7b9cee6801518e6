package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/catalog/usecase/command"
	"github.com/jingxi/marketplace/internal/catalog/usecase/query"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// CatalogHandler handles HTTP requests for sellers and products
type CatalogHandler struct {
	// Command handlers
	createSellerHandler  *command.CreateSellerHandler
	publishHandler       *command.PublishProductHandler
	updateProductHandler *command.UpdateProductHandler
	deleteProductHandler *command.DeleteProductHandler

	// Query handlers
	getProductHandler  *query.GetProductHandler
	listHandler        *query.ListProductsHandler
	getSellerHandler   *query.GetSellerHandler
	recommendedHandler *query.ListRecommendedHandler

	products       domain.ProductRepository
	authMiddleware *userhttp.AuthMiddleware
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(products domain.ProductRepository, sellers domain.SellerRepository, authMiddleware *userhttp.AuthMiddleware) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_catalog_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_catalog_request_duration_seconds",
			Help:    "Duration of catalog endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "marketplace_catalog_products",
			Help: "Number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &CatalogHandler{
		createSellerHandler:  command.NewCreateSellerHandler(sellers),
		publishHandler:       command.NewPublishProductHandler(products, sellers),
		updateProductHandler: command.NewUpdateProductHandler(products),
		deleteProductHandler: command.NewDeleteProductHandler(products),
		getProductHandler:    query.NewGetProductHandler(products),
		listHandler:          query.NewListProductsHandler(products),
		getSellerHandler:     query.NewGetSellerHandler(sellers),
		recommendedHandler:   query.NewListRecommendedHandler(products),
		products:             products,
		authMiddleware:       authMiddleware,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		totalProducts:        totalProducts,
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

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.listHandler.Handle(query.ListProductsQuery{
		SortBy: r.URL.Query().Get("sort_by"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updateTotalProductsMetric()
	h.respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// PublishProduct handles POST /products
func (h *CatalogHandler) PublishProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		ImageURL    string  `json:"image_url"`
		SellerID    uint    `json:"seller_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.publishHandler.Handle(command.PublishProductCommand{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SellerID:    req.SellerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSellerNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updateTotalProductsMetric()
	h.respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/{id} (admin only)
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		ImageURL    string  `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateProductHandler.Handle(command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id} (admin only)
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.deleteProductHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.updateTotalProductsMetric()
	w.WriteHeader(http.StatusNoContent)
}

// CreateSeller handles POST /sellers
func (h *CatalogHandler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShopName    string `json:"shop_name"`
		ContactInfo string `json:"contact_info"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	seller, err := h.createSellerHandler.Handle(command.CreateSellerCommand{
		ShopName:    req.ShopName,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, seller)
}

// GetSeller handles GET /sellers/{id}
func (h *CatalogHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	seller, err := h.getSellerHandler.Handle(query.GetSellerQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, seller)
}

// GetRecommendations handles GET /recommendations
func (h *CatalogHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.recommendedHandler.Handle(query.ListRecommendedQuery{Limit: limit})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) updateTotalProductsMetric() {
	count, err := h.products.Count()
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CatalogHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public catalog browsing
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.PublishProduct)).Methods("POST")
	router.HandleFunc("/sellers", h.metricsMiddleware("/sellers", h.CreateSeller)).Methods("POST")
	router.HandleFunc("/sellers/{id}", h.metricsMiddleware("/sellers/{id}", h.GetSeller)).Methods("GET")
	router.HandleFunc("/recommendations", h.metricsMiddleware("/recommendations", h.GetRecommendations)).Methods("GET")

	// Admin catalog management
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.authMiddleware.RequireAdmin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/products/{id}", h.metricsMiddleware("/products/{id}", h.authMiddleware.RequireAdmin(h.DeleteProduct))).Methods("DELETE")
}
