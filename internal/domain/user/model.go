package user

import "time"

// User is a recruiter account. Its id is the tenant key for billing.
type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FullName          *string   `json:"full_name,omitempty"`
	PasswordHash      string    `json:"-"` // Not exposed in JSON
	Role              string    `json:"role"`
	EmailVerified     bool      `json:"email_verified"`
	VerificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
