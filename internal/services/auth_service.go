package services

import (
	"context"
	"crypto/subtle"
	"time"

	"gold-pos/internal/auth"
)

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService checks the two shop codes kept in settings.
type AuthService struct {
	settings *SettingsService
	tokens   TokenIssuer
}

func NewAuthService(settings *SettingsService, tokens TokenIssuer) *AuthService {
	return &AuthService{settings: settings, tokens: tokens}
}

// AdminLogin trades the admin password for a token that unlocks settings and deletes.
func (s *AuthService) AdminLogin(ctx context.Context, password string) (*AdminToken, error) {
	settings, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}
	if !equalCodes(password, settings.AdminPassword) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminToken{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) VerifyDeleteCode(ctx context.Context, code string) error {
	settings, err := s.settings.Effective(ctx)
	if err != nil {
		return err
	}
	if !equalCodes(code, settings.DeleteCode) {
		return ErrInvalidCredentials
	}
	return nil
}

func equalCodes(given, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(stored)) == 1
}
