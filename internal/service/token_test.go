package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

func TestTokenManager_IssueAndAuthenticate(t *testing.T) {
	tm := NewTokenManager("test-secret")
	userID := uuid.New()

	token, err := tm.Issue(userID, valueobject.RoleFreelancer, time.Hour)
	require.NoError(t, err)

	identity, err := tm.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, valueobject.RoleFreelancer, identity.Role)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.Issue(uuid.New(), valueobject.RoleClient, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Authenticate(token)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("other").Issue(uuid.New(), valueobject.RoleClient, time.Hour)
	require.NoError(t, err)

	_, _, err = NewTokenManager("test-secret").ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-secret")
	claims := jwt.MapClaims{"sub": uuid.NewString(), "role": "guest", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Authenticate(token)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	tm := NewTokenManager("test-secret")
	claims := jwt.MapClaims{"sub": uuid.NewString(), "role": "client", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = tm.ParseAccess(token)
	assert.Error(t, err)
}
