package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/favorite/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// Create relies on the unique index over (user_id, product_id). The
// connection is opened with TranslateError, so a duplicate insert comes
// back as gorm.ErrDuplicatedKey regardless of driver.
func (r *GormFavoriteRepository) Create(favorite *domain.Favorite) error {
	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Delete is idempotent: removing a pair that is not there succeeds.
func (r *GormFavoriteRepository) Delete(userID, productID uint) error {
	result := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return nil
}

// FindProductsByUser joins through to products, ordered by when the
// favorite was added.
func (r *GormFavoriteRepository) FindProductsByUser(userID uint) ([]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	err := r.db.Model(&catalogdomain.Product{}).
		Select("products.*").
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at ASC, favorites.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return products, nil
}
