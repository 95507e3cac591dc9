package client

import (
	"context"
	"net/url"
)

// TeamService manages team seats and invitations
type TeamService struct {
	client *Client
}

// List returns invitations and members of the tenant's team
func (s *TeamService) List(ctx context.Context) ([]TeamMember, error) {
	var members []TeamMember
	if err := s.client.doRequest(ctx, "GET", "/api/v1/team/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Invite sends a team invitation
func (s *TeamService) Invite(ctx context.Context, email, role string) (*TeamMember, error) {
	req := map[string]string{"email": email, "role": role}

	var m TeamMember
	if err := s.client.doRequest(ctx, "POST", "/api/v1/team/members", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Revoke removes a member or cancels a pending invitation
func (s *TeamService) Revoke(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/team/members/"+url.PathEscape(id), nil, nil)
}

// Accept joins the team behind an invitation. The caller's email must be verified.
func (s *TeamService) Accept(ctx context.Context, invitationID string) (*TeamMember, error) {
	var m TeamMember
	if err := s.client.doRequest(ctx, "POST", "/api/v1/team/invitations/"+url.PathEscape(invitationID)+"/accept", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
