package command

import (
	"fmt"
	"time"

	"github.com/jingxi/marketplace/internal/user/domain"
)

// UpdateContactCommand represents the command to update a user's contact info
type UpdateContactCommand struct {
	UserID      uint
	ContactInfo string
}

// UpdateContactHandler handles contact info updates
type UpdateContactHandler struct {
	repo domain.UserRepository
}

// NewUpdateContactHandler creates a new update contact handler
func NewUpdateContactHandler(repo domain.UserRepository) *UpdateContactHandler {
	return &UpdateContactHandler{repo: repo}
}

// Handle executes the update contact command
func (h *UpdateContactHandler) Handle(cmd UpdateContactCommand) (*domain.User, error) {
	if cmd.ContactInfo == "" {
		return nil, fmt.Errorf("contact info is required")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.ContactInfo = cmd.ContactInfo
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
