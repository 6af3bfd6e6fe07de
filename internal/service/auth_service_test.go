package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users)
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, token, exp, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Maria@Example.COM ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, domain.PermissionRegular, user.Permission)
	assert.Equal(t, domain.UserTypeIndividual, user.UserType)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
	assert.Equal(t, domain.PermissionRegular, claims.Permission)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "pass-1"})
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, RegisterInput{Email: "MARIA@example.com", Password: "pass-2"})
	domainErr := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, domainErr.Message, "already registered")
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), RegisterInput{Email: "maria@example.com"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "maria@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	_, _, _, err = svc.Login(ctx, "maria@example.com", "wrong-pass")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestLoginInactiveAccount(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, users.Update(ctx, user))

	_, _, _, err = svc.Login(ctx, "maria@example.com", "s3cret-pass")
	domainErr := assertHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Contains(t, domainErr.Message, "inactive")
}
