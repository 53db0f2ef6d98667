package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"estilo/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and validates signed bearer tokens. Access and
// refresh tokens are produced by the same signing path and differ only by
// TTL. The service is pure: it holds a fixed secret and algorithm and
// never touches storage.
type TokenService struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewTokenService creates a new TokenService signing with HS256.
func NewTokenService(secret string, accessTokenTTL, refreshTokenTTL time.Duration) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// IssueToken signs a token carrying the subject and an absolute expiry of
// now plus ttl.
func (s *TokenService) IssueToken(subject uint, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(subject), 10),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// IssueAccessToken issues a short-lived access token for the subject.
func (s *TokenService) IssueAccessToken(subject uint) (string, error) {
	return s.IssueToken(subject, s.accessTokenTTL)
}

// IssueRefreshToken issues a long-lived refresh token for the subject.
func (s *TokenService) IssueRefreshToken(subject uint) (string, error) {
	return s.IssueToken(subject, s.refreshTokenTTL)
}

// ValidateToken verifies signature and expiry, returning the claims.
// Expired tokens fail with models.ErrExpiredToken, everything else with
// models.ErrMalformedToken.
func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, models.ErrExpiredToken
		}
		return nil, models.ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, models.ErrMalformedToken
	}
	return claims, nil
}

// SubjectOf extracts the subject claim and parses it as a user ID.
func (s *TokenService) SubjectOf(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["sub"].(string)
	if !ok || raw == "" {
		return 0, models.ErrInvalidSubject
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidSubject
	}
	return uint(id), nil
}
