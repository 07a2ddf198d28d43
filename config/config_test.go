package config

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAdminUserHashesPassword(t *testing.T) {
	t.Parallel()

	roleID := uuid.New()
	admin, err := newAdminUser("admin@petsu.in", "s3cret-pass", roleID)
	require.NoError(t, err)

	assert.Equal(t, "admin@petsu.in", admin.Email)
	assert.Equal(t, roleID, admin.RoleID)
	assert.NotEqual(t, "s3cret-pass", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret-pass")))
}

func TestNewAdminUserRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := newAdminUser("", "s3cret-pass", uuid.New())
	assert.Error(t, err)

	_, err = newAdminUser("admin@petsu.in", "", uuid.New())
	assert.Error(t, err)
}
