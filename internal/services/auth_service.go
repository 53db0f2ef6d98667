package services

import (
	"errors"
	"fmt"

	"estilo/internal/models"
	"estilo/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles authentication and token-to-identity resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login authenticates by email and password and issues an access/refresh
// token pair. Unknown email and password mismatch return the same error so
// the caller cannot probe which accounts exist.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// bcrypt's comparison is constant-time over the hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Register hashes the password and persists a new non-admin user. A taken
// email fails with models.ErrUserCantBeCreated.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, models.ErrUserCantBeCreated
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		IsAdmin:  false,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token itself is not rotated. Validation failures collapse to
// models.ErrInvalidCredentials regardless of the underlying cause.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", models.ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", models.ErrInvalidCredentials
	}
	userID, err := s.tokens.SubjectOf(claims)
	if err != nil {
		return "", models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return s.tokens.IssueAccessToken(user.ID)
}

// UserIDFromToken resolves a bearer token to the subject's numeric ID
// without touching storage. Cheap check for routes that only need identity.
func (s *AuthService) UserIDFromToken(token string) (uint, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return 0, err
	}
	return s.tokens.SubjectOf(claims)
}

// UserFromToken resolves a bearer token to the full persisted user record.
// Fails with models.ErrUserNotFound when the token outlives the user.
func (s *AuthService) UserFromToken(token string) (*models.User, error) {
	userID, err := s.UserIDFromToken(token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(userID)
}
