//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/jingxi/marketplace/internal/user/delivery/http"
	"github.com/jingxi/marketplace/internal/user/domain"
	"github.com/jingxi/marketplace/internal/user/repository"
	"github.com/jingxi/marketplace/internal/user/usecase/command"
	"github.com/jingxi/marketplace/pkg/auth"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideLoginUserHandler provides the login command handler
func ProvideLoginUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo, tokens)
}

// ProvideAuthMiddleware provides the session-resolving middleware
func ProvideAuthMiddleware(tokens *auth.TokenManager, repo domain.UserRepository) *httpDelivery.AuthMiddleware {
	return httpDelivery.NewAuthMiddleware(tokens, repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	RepositorySet,
	ProvideLoginUserHandler,
	ProvideAuthMiddleware,
	httpDelivery.NewUserHandler,
)

// InitializeHTTPHandler initializes the user HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, tokens *auth.TokenManager) (*httpDelivery.UserHandler, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
