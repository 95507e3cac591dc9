package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates an account with a hashed password and a pending
	// email verification token
	Register(ctx context.Context, email, password string, fullName *string) (*User, error)

	// Authenticate checks credentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// VerifyEmail marks the account holding token as verified
	VerifyEmail(ctx context.Context, token string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error
}
