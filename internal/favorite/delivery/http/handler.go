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
	"github.com/jingxi/marketplace/internal/favorite/domain"
	"github.com/jingxi/marketplace/internal/favorite/usecase/command"
	"github.com/jingxi/marketplace/internal/favorite/usecase/query"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// FavoriteHandler handles HTTP requests for user favorites. Every
// route runs behind authentication; the acting user is always the
// token's subject.
type FavoriteHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	listHandler   *query.ListFavoritesHandler

	authMiddleware *userhttp.AuthMiddleware
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites domain.FavoriteRepository, products catalogdomain.ProductRepository, authMiddleware *userhttp.AuthMiddleware) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_favorite_requests_total",
			Help: "Total number of requests to favorite endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_favorite_request_duration_seconds",
			Help:    "Duration of favorite endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &FavoriteHandler{
		addHandler:     command.NewAddFavoriteHandler(favorites, products),
		removeHandler:  command.NewRemoveFavoriteHandler(favorites, products),
		listHandler:    query.NewListFavoritesHandler(favorites),
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

func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// AddFavorite handles POST /users/favorites/{product_id}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	favorite, err := h.addHandler.Handle(command.AddFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrProductNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrAlreadyFavorited):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, favorite)
}

// RemoveFavorite handles DELETE /users/favorites/{product_id}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.removeHandler.Handle(command.RemoveFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites handles GET /users/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	products, err := h.listHandler.Handle(query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

func parseProductID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["product_id"], 10, 32)
	return uint(id), err
}

func (h *FavoriteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *FavoriteHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all favorite routes
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	auth := h.authMiddleware.Authenticate
	router.HandleFunc("/users/favorites", h.metricsMiddleware("/users/favorites", auth(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/users/favorites/{product_id}", h.metricsMiddleware("/users/favorites/{product_id}", auth(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/users/favorites/{product_id}", h.metricsMiddleware("/users/favorites/{product_id}", auth(h.RemoveFavorite))).Methods("DELETE")
}
