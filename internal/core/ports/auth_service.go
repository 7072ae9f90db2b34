package ports

import "context"

// AuthService defines registration and credential verification.
type AuthService interface {
	// Register creates a new user with a hashed credential. Returns false
	// (not an error) when the username is already taken.
	Register(ctx context.Context, username, password string) (bool, error)
	// Login verifies the credential and returns a signed token embedding
	// the user's id and username. Returns domain.ErrInvalidCredentials on
	// unknown users, empty stored hashes, or verification failure.
	Login(ctx context.Context, username, password string) (string, error)
	// DeleteAccount removes the user and all owned appointments.
	DeleteAccount(ctx context.Context, userID int64) (bool, error)
}
