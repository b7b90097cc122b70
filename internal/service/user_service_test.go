package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/repository"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
)

const testJWTSecret = "test-secret"

func newUserService(t *testing.T) UserService {
	t.Helper()

	db := setupTestDB(t)
	return NewUserService(repository.NewUserRepository(db), testJWTSecret, 24, logger.NewLogger("error", "text"))
}

func TestRegister(t *testing.T) {
	users := newUserService(t)

	user, err := users.Register("accountant@bluemoon.vn", "s3cret", models.RoleAccountant)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleAccountant, user.Role)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newUserService(t)

	_, err := users.Register("admin@bluemoon.vn", "s3cret", models.RoleAdmin)
	require.NoError(t, err)

	_, err = users.Register("admin@bluemoon.vn", "other", models.RoleLeader)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	users := newUserService(t)

	registered, err := users.Register("admin@bluemoon.vn", "s3cret", models.RoleAdmin)
	require.NoError(t, err)

	token, user, err := users.Login("admin@bluemoon.vn", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, string(models.RoleAdmin), claims["role"])
	assert.Equal(t, float64(registered.ID), claims["sub"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := newUserService(t)

	_, err := users.Register("admin@bluemoon.vn", "s3cret", models.RoleAdmin)
	require.NoError(t, err)

	_, _, err = users.Login("admin@bluemoon.vn", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = users.Login("nobody@bluemoon.vn", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserNotFound(t *testing.T) {
	users := newUserService(t)

	_, err := users.GetUser(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
