package ports

import (
	"context"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create persists a new user and returns it with its assigned id.
	// Returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and, cascading, every appointment it owns.
	// Reports whether a user was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
