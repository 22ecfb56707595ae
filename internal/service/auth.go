package service

import (
	"context"
	"story-narrator/internal/models"
)

// AuthService registers users, issues access tokens and resolves them back to users.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	// Login returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*models.Claims, error)
	// Authenticate validates the token and returns the active user it belongs to.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}
