package services_test

import (
	"testing"
	"time"

	"estilo/internal/models"
	"estilo/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_jwt_secret"

func newTokenService() *services.TokenService {
	return services.NewTokenService(testSecret, 30*time.Minute, 7*24*time.Hour)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueToken(123, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "123", claims["sub"])

	subject, err := svc.SubjectOf(claims)
	assert.NoError(t, err)
	assert.Equal(t, uint(123), subject)
}

func TestTokenService_AccessAndRefreshTTLs(t *testing.T) {
	svc := newTokenService()

	access, err := svc.IssueAccessToken(7)
	assert.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(7)
	assert.NoError(t, err)

	accessClaims, err := svc.ValidateToken(access)
	assert.NoError(t, err)
	refreshClaims, err := svc.ValidateToken(refresh)
	assert.NoError(t, err)

	accessExp := int64(accessClaims["exp"].(float64))
	refreshExp := int64(refreshClaims["exp"].(float64))

	assert.Greater(t, refreshExp, accessExp, "refresh token must outlive access token")
	assert.InDelta(t, time.Now().Add(30*time.Minute).Unix(), accessExp, 5)
	assert.InDelta(t, time.Now().Add(7*24*time.Hour).Unix(), refreshExp, 5)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueToken(123, -time.Hour)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, models.ErrExpiredToken)
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := newTokenService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, models.ErrMalformedToken)

	// Signed with a different secret.
	other := services.NewTokenService("other_secret", 30*time.Minute, time.Hour)
	token, err := other.IssueToken(123, time.Hour)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, models.ErrMalformedToken)
}

func TestTokenService_SubjectOf(t *testing.T) {
	svc := newTokenService()

	_, err := svc.SubjectOf(jwt.MapClaims{})
	assert.ErrorIs(t, err, models.ErrInvalidSubject)

	_, err = svc.SubjectOf(jwt.MapClaims{"sub": ""})
	assert.ErrorIs(t, err, models.ErrInvalidSubject)

	_, err = svc.SubjectOf(jwt.MapClaims{"sub": "not-a-number"})
	assert.ErrorIs(t, err, models.ErrInvalidSubject)

	subject, err := svc.SubjectOf(jwt.MapClaims{"sub": "42"})
	assert.NoError(t, err)
	assert.Equal(t, uint(42), subject)
}
