package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team seats",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List members and pending invitations",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := apiClient.Team().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list team: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(members)
			}

			table := NewTable("ID", "EMAIL", "ROLE", "STATUS", "INVITED")
			for _, m := range members {
				table.AddRow(m.ID, m.Email, m.Role, formatStatus(m.Status), m.InvitedAt.Format("2006-01-02"))
			}
			table.Render()
			return nil
		},
	})

	var role string
	invite := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a teammate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := apiClient.Team().Invite(context.Background(), args[0], role)
			if err != nil {
				return quotaError("failed to invite", err)
			}
			fmt.Printf("Invited %s as %s (invitation %s)\n", m.Email, m.Role, m.ID)
			return nil
		},
	}
	invite.Flags().StringVar(&role, "role", "recruiter", "admin, recruiter, interviewer or viewer")
	cmd.AddCommand(invite)

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <id>",
		Short: "Remove a member or cancel an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Team().Revoke(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to revoke: %w", err)
			}
			fmt.Println("Revoked")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "accept <invitation-id>",
		Short: "Join a team you were invited to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := apiClient.Team().Accept(context.Background(), args[0])
			if err != nil {
				return quotaError("failed to accept invitation", err)
			}
			fmt.Printf("Joined as %s\n", m.Role)
			return nil
		},
	})

	return cmd
}
