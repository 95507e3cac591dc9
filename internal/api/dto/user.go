package dto

import "github.com/pratik-mahalle/hireloop/internal/domain/user"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	FullName      *string `json:"full_name,omitempty"`
	Role          string  `json:"role"`
	EmailVerified bool    `json:"email_verified"`
}

// ToUserDTO converts a domain user
func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
	}
}
