package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/domain"
)

func TestTokenRoundtrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 15)
	user := &domain.User{ID: "user-1", Permission: domain.PermissionModerator}

	token, exp, err := manager.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, domain.PermissionModerator, claims.Permission)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", 15)
	user := &domain.User{ID: "user-1", Permission: domain.PermissionRegular}

	token, _, err := manager.GenerateToken(user)
	require.NoError(t, err)

	other := NewTokenManager("other-secret", 15)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 15)
	_, err := manager.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, ComparePassword(hash, "wrong-pass"))
}
