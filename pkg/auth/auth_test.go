package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hash)

	assert.True(t, CheckPassword(hash, "pw123456"))
	assert.False(t, CheckPassword(hash, "wrongpass"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	h1, err := HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := HashPassword("samepassword")
	require.NoError(t, err)

	// Different salts produce different hashes, both must verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "samepassword"))
	assert.True(t, CheckPassword(h2, "samepassword"))
}

func TestHashPasswordVeryLongInput(t *testing.T) {
	long := strings.Repeat("a", 100_000)
	_, err := HashPassword(long)
	// bcrypt rejects inputs over 72 bytes; either outcome is fine as long
	// as it does not panic or blow up memory.
	_ = err
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := tm.Generate(42, "alice", "customer")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	tm.ttl = -time.Minute

	token, err := tm.Generate(1, "alice", "customer")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTamperedToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := tm.Generate(1, "alice", "customer")
	require.NoError(t, err)

	_, err = tm.Validate(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateWrongSecret(t *testing.T) {
	tm1, err := NewTokenManager("secret-one", time.Hour)
	require.NoError(t, err)
	tm2, err := NewTokenManager("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := tm1.Generate(1, "alice", "admin")
	require.NoError(t, err)

	_, err = tm2.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateGarbage(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Validate(bad)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", bad)
	}
}
