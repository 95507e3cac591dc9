package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show plan and usage summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ready, _ := apiClient.Ready(ctx)
			sub, subErr := apiClient.Billing().Subscription(ctx)
			usage, usageErr := apiClient.Entitlements().Summary(ctx)

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}
				if ready != nil {
					summary["api"] = ready
				}
				if subErr == nil {
					summary["subscription"] = sub
				}
				if usageErr == nil {
					summary["usage"] = usage
				}
				return printOutput(summary)
			}

			fmt.Println("hireloop")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  API:           %s\n", readinessLabel(ready))

			if subErr != nil {
				fmt.Printf("  Plan:          (error: %v)\n", subErr)
			} else {
				fmt.Printf("  Plan:          %s\n", planLabel(sub))
				if sub != nil && sub.CurrentPeriodEnd != nil {
					fmt.Printf("  Renews:        %s\n", sub.CurrentPeriodEnd.Format("2006-01-02"))
				}
			}

			if usageErr != nil {
				fmt.Printf("  Usage:         (error: %v)\n", usageErr)
				return nil
			}
			for _, e := range usage {
				line := fmt.Sprintf("  %-14s %s", strings.ReplaceAll(e.Resource, "_", " ")+":", formatUsage(e))
				if e.NeedsUpgrade {
					line += "  (upgrade required)"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage [resource]",
		Short: "Show plan usage, or check one resource",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				check, err := apiClient.Entitlements().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to check %s: %w", args[0], err)
				}
				if getOutputFormat() != "table" {
					return printOutput(check)
				}
				fmt.Printf("%s: %s (%s)\n", check.Entitlement.Resource, formatUsage(check.Entitlement), check.Entitlement.Reason)
				if check.UpgradeURL != "" {
					fmt.Printf("Upgrade: %s\n", check.UpgradeURL)
				}
				return nil
			}

			usage, err := apiClient.Entitlements().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to read usage: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(usage)
			}

			table := NewTable("RESOURCE", "PLAN", "USAGE", "ALLOWED")
			for _, e := range usage {
				table.AddRow(e.Resource, e.PlanID, formatUsage(e), fmt.Sprintf("%t", e.Allowed))
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "analytics",
		Short: "Show the hiring analytics overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Entitlements().Analytics(context.Background())
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.IsRedirect() {
				return fmt.Errorf("analytics is not included in your plan. Upgrade at %s", apiErr.Location)
			}
			if err != nil {
				return fmt.Errorf("failed to load analytics: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Plan:                  %s\n", summary.PlanID)
			fmt.Printf("Open jobs:             %d\n", summary.OpenJobs)
			fmt.Printf("Candidates:            %d\n", summary.TotalCandidates)
			fmt.Printf("Interviews this month: %d\n", summary.InterviewsThisMonth)
			return nil
		},
	})

	return cmd
}

// readinessLabel summarises the server readiness report on one line
func readinessLabel(r *client.Readiness) string {
	if r == nil {
		return "unreachable"
	}
	label := r.Status
	if r.Database != "" && r.Database != "connected" {
		label += ", database " + r.Database
	}
	if r.WebhookDatabase == "unreachable" {
		label += ", webhook database unreachable"
	}
	if r.Billing == "disabled" {
		label += ", billing disabled"
	}
	return label
}
