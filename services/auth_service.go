package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLength = 8

type AuthService interface {
	// AuthenticateAdmin checks password against the configured bcrypt hash.
	AuthenticateAdmin(ctx context.Context, password string) error
}

type authService struct {
	adminHash []byte
	logger    *slog.Logger
}

// NewAuthService takes the bcrypt hash of the admin password. An empty hash disables admin login.
func NewAuthService(adminPasswordHash string, logger *slog.Logger) AuthService {
	return &authService{
		adminHash: []byte(strings.TrimSpace(adminPasswordHash)),
		logger:    loggerOrDefault(logger),
	}
}

func (s *authService) AuthenticateAdmin(ctx context.Context, password string) error {
	if len(s.adminHash) == 0 {
		return ErrAdminLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.WarnContext(ctx, "admin login rejected")
			return ErrInvalidCredentials
		}
		return fmt.Errorf("ошибка проверки пароля: %w", err)
	}
	return nil
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < minAdminPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrValidationFailed, minAdminPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hashed), nil
}
