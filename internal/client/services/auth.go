// Package services holds the thin application services the CLI talks to.
// They sit between the commands and the HTTP gateway, adding local
// persistence and input validation.
package services

import (
	"context"
	"fmt"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/models"
)

// TokenStore persists the credential token between runs.
type TokenStore interface {
	SetToken(token string) error
	ClearToken() error
}

// AuthService logs the user in and out and reports who is logged in.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  TokenStore
}

func NewAuthService(client api.Client, store TokenStore) AuthService {
	return &authService{client: client, store: store}
}

// Login exchanges credentials for a token and persists it so later runs
// stay authenticated.
func (s *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	session, err := s.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := s.store.SetToken(session.Token); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return session, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.client.CurrentUser(ctx)
}

// Logout drops the local token. The server keeps its session; there is no
// revocation endpoint.
func (s *authService) Logout(_ context.Context) error {
	return s.store.ClearToken()
}
