package interfaces

import (
	"context"

	"story-narrator/internal/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateUser inserts a user and fills in its ID and CreatedAt.
	// Returns models.ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns models.ErrUserNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailExists reports whether the email is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}
