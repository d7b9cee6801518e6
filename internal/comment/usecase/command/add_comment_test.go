package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jingxi/marketplace/internal/catalog/domain"
	"github.com/jingxi/marketplace/internal/comment/domain"
)

type stubProductRepository struct {
	known map[uint]bool
}

func (s *stubProductRepository) Create(product *catalogdomain.Product) error { return nil }
func (s *stubProductRepository) FindByID(id uint) (*catalogdomain.Product, error) {
	if s.known[id] {
		return &catalogdomain.Product{ID: id}, nil
	}
	return nil, catalogdomain.ErrProductNotFound
}
func (s *stubProductRepository) FindAll(sortBy string, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (s *stubProductRepository) FindBySeller(sellerID uint, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (s *stubProductRepository) FindNewest(limit int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (s *stubProductRepository) Update(product *catalogdomain.Product) error { return nil }
func (s *stubProductRepository) Delete(id uint) error                        { return nil }
func (s *stubProductRepository) Count() (int64, error)                       { return 0, nil }

type capturingCommentRepository struct {
	created []*domain.Comment
}

func (c *capturingCommentRepository) Create(comment *domain.Comment) error {
	comment.ID = uint(len(c.created) + 1)
	c.created = append(c.created, comment)
	return nil
}

func (c *capturingCommentRepository) FindByID(id uint) (*domain.Comment, error) {
	return nil, domain.ErrCommentNotFound
}

func (c *capturingCommentRepository) FindByProduct(productID uint, limit, offset int) ([]domain.Comment, error) {
	return nil, nil
}

func (c *capturingCommentRepository) IncrementLikes(id uint) error {
	return domain.ErrCommentNotFound
}

func newAddHandler() (*AddCommentHandler, *capturingCommentRepository) {
	comments := &capturingCommentRepository{}
	products := &stubProductRepository{known: map[uint]bool{1: true}}
	return NewAddCommentHandler(comments, products), comments
}

func TestAddComment(t *testing.T) {
	handler, comments := newAddHandler()

	comment, err := handler.Handle(AddCommentCommand{
		Content:   "Great product, arrived quickly!",
		UserID:    2,
		Username:  "alice",
		ProductID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Great product, arrived quickly!", comment.Content)
	assert.Equal(t, uint(2), comment.UserID)
	assert.Len(t, comments.created, 1)
}

func TestAddCommentStripsHTML(t *testing.T) {
	handler, _ := newAddHandler()

	comment, err := handler.Handle(AddCommentCommand{
		Content:   `<script>alert("x")</script>Looks <b>great</b> in my kitchen`,
		UserID:    2,
		Username:  "alice",
		ProductID: 1,
	})
	require.NoError(t, err)

	assert.NotContains(t, comment.Content, "<script>")
	assert.NotContains(t, comment.Content, "<b>")
	assert.Contains(t, comment.Content, "great")
}

func TestAddCommentLengthAfterSanitization(t *testing.T) {
	handler, comments := newAddHandler()

	// Enough raw characters, but nothing left once tags are stripped.
	_, err := handler.Handle(AddCommentCommand{
		Content:   "<div><span><iframe src='http://evil'></iframe></span></div>",
		UserID:    2,
		ProductID: 1,
	})
	assert.Error(t, err)
	assert.Empty(t, comments.created)
}

func TestAddCommentLengthBounds(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(AddCommentCommand{Content: "meh", UserID: 2, ProductID: 1})
	assert.Error(t, err, "below minimum length")

	_, err = handler.Handle(AddCommentCommand{
		Content:   strings.Repeat("a", domain.MaxContentLength+1),
		UserID:    2,
		ProductID: 1,
	})
	assert.Error(t, err, "above maximum length")

	_, err = handler.Handle(AddCommentCommand{
		Content:   strings.Repeat("a", domain.MaxContentLength),
		UserID:    2,
		ProductID: 1,
	})
	assert.NoError(t, err, "exactly at maximum length")
}

func TestAddCommentUnknownProduct(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(AddCommentCommand{
		Content:   "Great product, arrived quickly!",
		UserID:    2,
		ProductID: 99,
	})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}
