package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Content length bounds enforced at comment creation.
const (
	MinContentLength = 5
	MaxContentLength = 500
)

// Comment represents a user comment on a product. Content is stored
// sanitized; raw HTML never reaches the database.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`

	// Username is joined in for responses, not persisted.
	Username string `json:"username" gorm:"-"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// CommentRepository defines the contract for comment data access
type CommentRepository interface {
	Create(comment *Comment) error
	FindByID(id uint) (*Comment, error)
	// FindByProduct returns a product's comments ordered by likes
	// descending, paginated.
	FindByProduct(productID uint, limit, offset int) ([]Comment, error)
	IncrementLikes(id uint) error
}
