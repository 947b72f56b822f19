package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

const minPasswordLength = 8

// AuthService handles registration, login and the refresh token lifecycle.
type AuthService struct {
	repo   *storage.SQLiteRepository
	tokens *auth.Manager
	logger *log.Logger
}

func NewAuthService(repo *storage.SQLiteRepository, tokens *auth.Manager, logger *log.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		logger: logger.WithComponent(log.ComponentAuth),
	}
}

// Register creates a new user with a hashed password. Duplicate usernames or
// emails surface as storage.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*core.User, error) {
	user := &core.User{Username: username, Email: email}
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}
	if len(password) < minPasswordLength {
		return nil, invalid(fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID)
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted so logout can revoke it.
func (s *AuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		// Same outcome whether the email exists or not.
		return "", "", ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	accessToken, err = s.tokens.NewAccessToken(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err = s.tokens.NewRefreshToken(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.repo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", "", err
	}

	s.logger.InfoContext(ctx, "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, user.ID)
	return accessToken, refreshToken, nil
}

// Refresh exchanges a valid, still-stored refresh token for a new access
// token. A token that fails verification or no longer matches the stored one
// is rejected as auth.ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Parse(refreshToken)
	if err != nil {
		return "", err
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", auth.ErrInvalidToken
		}
		return "", err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		// Revoked by logout or replaced by a newer login.
		return "", auth.ErrInvalidToken
	}

	accessToken, err := s.tokens.NewAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "Access token refreshed",
		log.FieldOperation, log.OpRefresh,
		log.FieldUserID, user.ID)
	return accessToken, nil
}

// Logout revokes the user's stored refresh token.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.repo.UpdateRefreshToken(ctx, userID, ""); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	s.logger.InfoContext(ctx, "User logged out", log.FieldUserID, userID)
	return nil
}
