package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingxi/marketplace/internal/user/domain"
	"github.com/jingxi/marketplace/pkg/auth"
)

// mockUserRepository is an in-memory UserRepository for tests.
type mockUserRepository struct {
	users  map[string]*domain.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User), nextID: 1}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByID(id uint) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(username string) (*domain.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepository) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) Update(user *domain.User) error {
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) Count() (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepository) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return tm
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username:    "alice",
		Password:    "secret123",
		ContactInfo: "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestRegisterUserValidation(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewRegisterUserHandler(repo)

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{Password: "secret123"}},
		{"missing password", RegisterUserCommand{Username: "bob"}},
		{"short password", RegisterUserCommand{Username: "bob", Password: "abc"}},
		{"bogus role", RegisterUserCommand{Username: "bob", Password: "secret123", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newMockUserRepository()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{Username: "alice", Password: "other456"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginUser(t *testing.T) {
	repo := newMockUserRepository()
	tokens := newTestTokenManager(t)

	register := NewRegisterUserHandler(repo)
	user, err := register.Handle(RegisterUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	login := NewLoginUserHandler(repo, tokens)
	resp, err := login.Handle(LoginUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, domain.RoleCustomer, resp.Role)

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginUserInvalidCredentials(t *testing.T) {
	repo := newMockUserRepository()
	tokens := newTestTokenManager(t)

	register := NewRegisterUserHandler(repo)
	_, err := register.Handle(RegisterUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	login := NewLoginUserHandler(repo, tokens)

	// Unknown username and wrong password must be indistinguishable.
	_, errUnknown := login.Handle(LoginUserCommand{Username: "nobody", Password: "secret123"})
	_, errWrongPw := login.Handle(LoginUserCommand{Username: "alice", Password: "wrong-pass"})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginUserDeactivatedAccount(t *testing.T) {
	repo := newMockUserRepository()
	tokens := newTestTokenManager(t)

	register := NewRegisterUserHandler(repo)
	user, err := register.Handle(RegisterUserCommand{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, repo.Update(user))

	login := NewLoginUserHandler(repo, tokens)
	_, err = login.Handle(LoginUserCommand{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
