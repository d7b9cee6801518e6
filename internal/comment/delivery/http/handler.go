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
	"github.com/jingxi/marketplace/internal/comment/domain"
	"github.com/jingxi/marketplace/internal/comment/usecase/command"
	"github.com/jingxi/marketplace/internal/comment/usecase/query"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// CommentHandler handles HTTP requests for product comments
type CommentHandler struct {
	addHandler  *command.AddCommentHandler
	likeHandler *command.LikeCommentHandler
	listHandler *query.ListProductCommentsHandler

	authMiddleware *userhttp.AuthMiddleware
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments domain.CommentRepository, products catalogdomain.ProductRepository, authMiddleware *userhttp.AuthMiddleware) *CommentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_comment_requests_total",
			Help: "Total number of requests to comment endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_comment_request_duration_seconds",
			Help:    "Duration of comment endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CommentHandler{
		addHandler:     command.NewAddCommentHandler(comments, products),
		likeHandler:    command.NewLikeCommentHandler(comments),
		listHandler:    query.NewListProductCommentsHandler(comments, products),
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

func (h *CommentHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListComments handles GET /products/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	comments, err := h.listHandler.Handle(query.ListProductCommentsQuery{
		ProductID: productID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /products/{id}/comments (authenticated)
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	userID, ok := userhttp.CallerID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	username, _ := r.Context().Value(userhttp.UsernameKey).(string)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.addHandler.Handle(command.AddCommentCommand{
		Content:   req.Content,
		UserID:    userID,
		Username:  username,
		ProductID: productID,
	})
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, comment)
}

// LikeComment handles POST /comments/{id}/like (authenticated)
func (h *CommentHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := h.likeHandler.Handle(command.LikeCommentCommand{CommentID: commentID}); err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Comment liked"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *CommentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CommentHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all comment routes
func (h *CommentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products/{id}/comments", h.metricsMiddleware("/products/{id}/comments", h.ListComments)).Methods("GET")
	router.HandleFunc("/products/{id}/comments", h.metricsMiddleware("/products/{id}/comments", h.authMiddleware.Authenticate(h.AddComment))).Methods("POST")
	router.HandleFunc("/comments/{id}/like", h.metricsMiddleware("/comments/{id}/like", h.authMiddleware.Authenticate(h.LikeComment))).Methods("POST")
}
