package services

import (
	"context"
	"fmt"
	"log"

	"TeleAdmin/backend"
	"TeleAdmin/models"
	"TeleAdmin/session"

	"github.com/pkg/errors"
)

// AuthService drives the session gate: it forwards credentials to the
// upstream login endpoint, verifies the account is an administrator via
// the profile endpoint, and opens the console session.
type AuthService struct {
	api      *backend.Client
	users    UserSource
	sessions *session.Manager
}

func NewAuthService(api *backend.Client, users UserSource, sessions *session.Manager) *AuthService {
	return &AuthService{api: api, users: users, sessions: sessions}
}

// Login authenticates against the upstream and returns the console token.
// Non-admin accounts are rejected and never leave a session behind.
func (s *AuthService) Login(ctx context.Context, creds models.LoginRequest) (string, error) {
	var result models.LoginResult
	if err := s.api.Post(ctx, "/auth/login", creds, &result); err != nil {
		return "", errors.Wrap(err, "upstream login")
	}
	if result.Token == "" {
		return "", errors.New("upstream login returned no token")
	}

	token, err := s.sessions.Begin(ctx, fmt.Sprint(result.ID), result.Role, result.Token)
	if err != nil {
		return "", err
	}

	// The login response already carries a role, but the profile endpoint
	// is authoritative for admin gating.
	profile, err := s.users.Profile(ctx)
	if err != nil {
		s.sessions.Logout(ctx)
		return "", errors.Wrap(err, "verify admin profile")
	}
	if profile.Role != models.RoleAdmin {
		s.sessions.Logout(ctx)
		log.Printf("Rejected console login for non-admin account %q", profile.Username)
		return "", session.ErrNotAdmin
	}
	return token, nil
}

// Logout ends the console session.
func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.Logout(ctx)
}
