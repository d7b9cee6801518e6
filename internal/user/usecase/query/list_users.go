package query

import (
	"fmt"

	"github.com/jingxi/marketplace/internal/user/domain"
)

// ListUsersQuery represents the query to list users (admin only)
type ListUsersQuery struct {
	Limit  int
	Offset int
	Role   string // Optional role filter
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(query ListUsersQuery) ([]domain.User, error) {
	var (
		users []domain.User
		err   error
	)

	if query.Role != "" {
		users, err = h.repo.FindByRole(query.Role, query.Limit, query.Offset)
	} else {
		users, err = h.repo.FindAll(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
