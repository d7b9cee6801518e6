package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jingxi/marketplace/internal/comment/domain"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Comment{})
}

func (r *GormCommentRepository) Create(comment *domain.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *GormCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

// FindByProduct joins usernames in so responses can show who wrote
// each comment without a second round trip.
func (r *GormCommentRepository) FindByProduct(productID uint, limit, offset int) ([]domain.Comment, error) {
	query := r.db.Model(&domain.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.product_id = ?", productID).
		Order("comments.likes DESC, comments.created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var comments []domain.Comment
	if err := query.Scan(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *GormCommentRepository) IncrementLikes(id uint) error {
	result := r.db.Model(&domain.Comment{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to like comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
