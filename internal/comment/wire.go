//go:build wireinject
// +build wireinject

package comment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/catalog"
	"github.com/jingxi/marketplace/internal/comment/delivery/http"
	"github.com/jingxi/marketplace/internal/comment/domain"
	"github.com/jingxi/marketplace/internal/comment/repository"
	userhttp "github.com/jingxi/marketplace/internal/user/delivery/http"
)

// ProvideCommentRepository provides the comment repository
func ProvideCommentRepository(db *gorm.DB) domain.CommentRepository {
	return repository.NewGormCommentRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideCommentRepository,
	catalog.ProvideProductRepository,
)

// InitializeHTTPHandler initializes the comment HTTP handler
func InitializeHTTPHandler(db *gorm.DB, authMiddleware *userhttp.AuthMiddleware) (*http.CommentHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCommentHandler,
	)
	return nil, nil
}
