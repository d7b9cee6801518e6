package domain

import (
	"errors"
	"time"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
)

var ErrAlreadyFavorited = errors.New("product already in favorites")

// Favorite links a user to a product they marked. The composite unique
// index makes duplicate inserts fail at the database, so concurrent
// requests for the same pair cannot both succeed.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	// Create inserts the pair and returns ErrAlreadyFavorited when the
	// unique index rejects a duplicate.
	Create(favorite *Favorite) error
	// Delete removes the pair. Removing an absent pair is not an error.
	Delete(userID, productID uint) error
	// FindProductsByUser returns the user's favorited products in the
	// order the favorites were added.
	FindProductsByUser(userID uint) ([]catalogdomain.Product, error)
}
