package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	cataloghttp "github.com/jingxi/marketplace/internal/catalog/delivery/http"
	catalogrepo "github.com/jingxi/marketplace/internal/catalog/repository"
	commenthttp "github.com/jingxi/marketplace/internal/comment/delivery/http"
	commentrepo "github.com/jingxi/marketplace/internal/comment/repository"
	couponhttp "github.com/jingxi/marketplace/internal/coupon/delivery/http"
	couponrepo "github.com/jingxi/marketplace/internal/coupon/repository"
	favoritehttp "github.com/jingxi/marketplace/internal/favorite/delivery/http"
	favoriterepo "github.com/jingxi/marketplace/internal/favorite/repository"
	orderhttp "github.com/jingxi/marketplace/internal/order/delivery/http"
	orderrepo "github.com/jingxi/marketplace/internal/order/repository"
	ordercommand "github.com/jingxi/marketplace/internal/order/usecase/command"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
	userrepo "github.com/jingxi/marketplace/internal/user/repository"
	usercommand "github.com/jingxi/marketplace/internal/user/usecase/command"
	"github.com/jingxi/marketplace/kafka"
	"github.com/jingxi/marketplace/pkg/auth"
	"github.com/jingxi/marketplace/pkg/database"
	"github.com/jingxi/marketplace/pkg/logger"
	"github.com/jingxi/marketplace/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "marketplace")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting marketplace service")

	// Token manager. A missing secret is a configuration error, not
	// something to paper over with a default.
	tokens, err := auth.NewTokenManager(os.Getenv("JWT_SECRET"), auth.DefaultTokenTTL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("JWT_SECRET must be set")
	}

	// Tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "marketplacedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	users := userrepo.NewGormUserRepository(db)
	products := catalogrepo.NewGormCatalogRepositoryWithTracing(db)
	sellers := catalogrepo.NewGormSellerRepository(db)
	comments := commentrepo.NewGormCommentRepository(db)
	favorites := favoriterepo.NewGormFavoriteRepository(db)
	orders := orderrepo.NewGormOrderRepository(db)
	coupons := couponrepo.NewGormCouponRepository(db)

	// Migrations
	migrators := []interface{ AutoMigrate() error }{
		users, products.GormCatalogRepository, comments, favorites, orders, coupons,
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka is optional: the service runs without a broker, just
	// without order events.
	var publisher ordercommand.EventPublisher
	var kafkaPublisher *kafka.Publisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", ""), ",")
	if brokers[0] != "" {
		kafkaPublisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, order events disabled")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	}

	// Seller notification consumer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if kafkaPublisher != nil {
		startSellerNotifier(ctx, brokers)
	}

	// Handlers
	authMiddleware := userhttp.NewAuthMiddleware(tokens, users)
	loginHandler := usercommand.NewLoginUserHandler(users, tokens)
	userHandler := userhttp.NewUserHandler(users, authMiddleware, loginHandler)
	catalogHandler := cataloghttp.NewCatalogHandler(products, sellers, authMiddleware)
	commentHandler := commenthttp.NewCommentHandler(comments, products, authMiddleware)
	favoriteHandler := favoritehttp.NewFavoriteHandler(favorites, products, authMiddleware)
	orderHandler := orderhttp.NewOrderHandler(orders, products, sellers, users, publisher, authMiddleware)
	couponHandler := couponhttp.NewCouponHandler(coupons, sellers, authMiddleware)

	// Router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	commentHandler.RegisterRoutes(router)
	favoriteHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	couponHandler.RegisterRoutes(router)
	userHandler.RegisterHealthCheck(router, sqlDB)

	router.Handle("/metrics", promhttp.Handler())
	userhttp.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// startSellerNotifier consumes order events and logs a notification per
// seller. A real deployment would fan these out by email or push.
func startSellerNotifier(ctx context.Context, brokers []string) {
	consumer, err := kafka.NewConsumer(brokers, "seller-notifications", []string{kafka.TopicOrderPlaced})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable, seller notifications disabled")
		return
	}

	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, func(ctx context.Context, event kafka.OrderPlacedEvent) error {
		logger.Info(ctx).
			Str("order_id", event.OrderID).
			Uint("seller_id", event.SellerID).
			Uint("product_id", event.ProductID).
			Float64("price", event.Price).
			Msg("Notifying seller of new order")
		return nil
	})

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start consumer")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
