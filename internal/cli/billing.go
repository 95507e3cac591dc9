package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse subscription plans",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plans and their limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Billing().Plans(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("ID", "NAME", "PRICE", "JOBS", "CANDIDATES", "INTERVIEWS/MO", "SEATS", "")
			for _, p := range plans {
				marker := ""
				if p.IsCurrent {
					marker = "current"
				} else if p.IsPopular {
					marker = "popular"
				}
				table.AddRow(
					p.ID,
					p.Name,
					fmt.Sprintf("%.2f %s/%s", p.Price, strings.ToUpper(p.Currency), p.Interval),
					formatLimit(p.Limits.MaxJobs),
					formatLimit(p.Limits.MaxCandidates),
					formatLimit(p.Limits.MaxInterviewsPerMonth),
					formatLimit(p.Limits.MaxTeamMembers),
					marker,
				)
			}
			table.Render()
			return nil
		},
	})

	return cmd
}

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Manage your subscription",
	}

	cmd.AddCommand(newBillingShowCmd())
	cmd.AddCommand(newBillingTrialCmd())
	cmd.AddCommand(newBillingUpgradeCmd())
	cmd.AddCommand(newBillingPortalCmd())
	cmd.AddCommand(newBillingFailedWebhooksCmd())

	return cmd
}

func newBillingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := apiClient.Billing().Subscription(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(sub)
			}
			if sub == nil {
				fmt.Println("No subscription. Run 'hireloop billing trial' to start the free trial.")
				return nil
			}

			fmt.Printf("Plan:    %s\n", sub.PlanID)
			fmt.Printf("Status:  %s\n", formatStatus(sub.Status))
			if sub.CurrentPeriodStart != nil && sub.CurrentPeriodEnd != nil {
				fmt.Printf("Period:  %s to %s\n", sub.CurrentPeriodStart.Format("2006-01-02"), sub.CurrentPeriodEnd.Format("2006-01-02"))
			}
			fmt.Printf("Billing: %t\n", sub.HasBillingAccount)
			return nil
		},
	}
}

func newBillingTrialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial",
		Short: "Start the free trial",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := apiClient.Billing().StartTrial(context.Background())
			if err != nil {
				return fmt.Errorf("failed to start trial: %w", err)
			}
			fmt.Printf("Trial started on %s\n", sub.PlanID)
			return nil
		},
	}
}

func newBillingUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <plan-id>",
		Short: "Open a checkout session for a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := apiClient.Billing().Checkout(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create checkout: %w", err)
			}
			fmt.Printf("Complete payment at:\n  %s\n", url)
			return nil
		},
	}
}

func newBillingPortalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Open the billing portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := apiClient.Billing().Portal(context.Background())
			if err != nil {
				return fmt.Errorf("failed to open portal: %w", err)
			}
			fmt.Printf("Manage billing at:\n  %s\n", url)
			return nil
		},
	}
}

func newBillingFailedWebhooksCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "failed-webhooks",
		Short: "List provider events that need reconciliation (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := apiClient.Billing().FailedWebhooks(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list webhook events: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(events)
			}

			table := NewTable("EVENT", "TYPE", "RECEIVED", "ERROR")
			for _, e := range events {
				table.AddRow(e.ProviderEventID, e.EventType, e.CreatedAt.Format("2006-01-02 15:04"), truncate(e.ProcessingError, 60))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum events to show")
	return cmd
}
