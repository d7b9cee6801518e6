package main

// @title Marketplace API
// @version 1.0
// @description Marketplace backend: accounts, catalog, comments, favorites, orders and coupons
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/jingxi/marketplace
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/jingxi/marketplace/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description User profile and favorites endpoints

// @tag.name Catalog
// @tag.description Product and seller endpoints

// @tag.name Orders
// @tag.description Order placement endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Health
// @tag.description Health check endpoints
