package services_test

import (
	"context"
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*services.AuthService, *repositories.MockUserRepository) {
	users := repositories.NewMockUserRepository()
	return services.NewAuthService(users, "test-secret"), users
}

func TestAuthService_RegisterUser(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	user := &models.User{
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	}
	require.NoError(t, svc.RegisterUser(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")

	stored, err := users.GetByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &models.User{
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	}))

	err := svc.RegisterUser(ctx, &models.User{
		Name:     "Impostor",
		Email:    "buyer@example.com",
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthService_LoginUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &models.User{
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	}))

	token, err := svc.LoginUser(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims["email"])
	assert.Equal(t, false, claims["is_admin"])
	assert.NotEmpty(t, claims["user_id"])
}

func TestAuthService_LoginUser_BadCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, &models.User{
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	}))

	_, err := svc.LoginUser(ctx, "buyer@example.com", "wrong-pass")
	assert.EqualError(t, err, "invalid credentials")

	// Unknown email yields the same message as a wrong password.
	_, err = svc.LoginUser(ctx, "ghost@example.com", "s3cret-pass")
	assert.EqualError(t, err, "invalid credentials")
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected.
	otherSigned := services.NewAuthService(repositories.NewMockUserRepository(), "other-secret")
	ctx := context.Background()
	require.NoError(t, otherSigned.RegisterUser(ctx, &models.User{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	}))
	token, err := otherSigned.LoginUser(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
