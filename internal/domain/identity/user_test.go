package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid username and password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123")

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "testuser", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, 1, user.Version)
	})

	t.Run("normalizes username to lowercase", func(t *testing.T) {
		user, err := NewUser("TestUser", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("trims username whitespace", func(t *testing.T) {
		user, err := NewUser("  testuser  ", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		_, err := NewUser("", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		_, err := NewUser("test user!", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only contain letters")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("testuser", "abc")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})

	t.Run("does not store the plaintext password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123")

		require.NoError(t, err)
		assert.NotContains(t, user.PasswordHash, "Password123")
	})
}

func TestNewUserWithRole(t *testing.T) {
	t.Run("creates user with explicit role", func(t *testing.T) {
		user, err := NewUserWithRole("adminuser", "Password123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, user.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUserWithRole("someone", "Password123", Role("superuser"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown role")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("testuser", "Password123")
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("Password123"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.False(t, user.VerifyPassword("WrongPassword"))
	})

	t.Run("returns false for malformed digest", func(t *testing.T) {
		broken := &User{PasswordHash: "not-a-bcrypt-digest"}
		assert.False(t, broken.VerifyPassword("Password123"))
	})

	t.Run("salted hashing yields distinct digests", func(t *testing.T) {
		other, err := NewUser("otheruser", "Password123")
		require.NoError(t, err)
		assert.NotEqual(t, user.PasswordHash, other.PasswordHash)
	})
}

func TestUser_ChangeRole(t *testing.T) {
	t.Run("changes role and bumps version", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123")
		require.NoError(t, err)

		err = user.ChangeRole(RoleModerator)

		require.NoError(t, err)
		assert.Equal(t, RoleModerator, user.Role)
		assert.Equal(t, 2, user.Version)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123")
		require.NoError(t, err)

		err = user.ChangeRole(Role("root"))

		assert.Error(t, err)
		assert.Equal(t, RoleUser, user.Role)
	})
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleModerator.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}
