package dto

// InviteMemberRequest represents a team invitation request
type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,team_role"`
}
