package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

// limitError keeps the API error reachable for ExitCode while printing
// only the upgrade hint
type limitError struct {
	msg string
	err error
}

func (e *limitError) Error() string { return e.msg }
func (e *limitError) Unwrap() error { return e.err }

// quotaError turns a plan-limit rejection into an actionable message
func quotaError(action string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
		if u := apiErr.UpgradeURL(); u != "" {
			return &limitError{msg: fmt.Sprintf("%s: plan limit reached. Upgrade at %s", action, u), err: err}
		}
		return &limitError{msg: fmt.Sprintf("%s: plan limit reached. Run 'hireloop plans list'", action), err: err}
	}
	return fmt.Errorf("%s: %w", action, err)
}

func newJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage job postings",
	}

	var status string
	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List job postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Jobs().List(context.Background(), status, &client.ListOptions{Page: page, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			table := NewTable("ID", "TITLE", "DEPARTMENT", "LOCATION", "STATUS")
			for _, j := range result.Data {
				table.AddRow(strconv.FormatInt(j.ID, 10), truncate(j.Title, 40), j.Department, j.Location, formatStatus(j.Status))
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d jobs)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status: draft, open, closed")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	var req client.CreateJobRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a job posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Title == "" {
				req.Title = promptInput("Title: ")
			}
			j, err := apiClient.Jobs().Create(context.Background(), req)
			if err != nil {
				return quotaError("failed to create job", err)
			}
			fmt.Printf("Created job %d (%s)\n", j.ID, j.Status)
			return nil
		},
	}
	create.Flags().StringVar(&req.Title, "title", "", "job title")
	create.Flags().StringVar(&req.Department, "department", "", "department")
	create.Flags().StringVar(&req.Location, "location", "", "location")
	create.Flags().StringVar(&req.Status, "status", "", "draft, open or closed (default open)")

	cmd.AddCommand(list, create)
	return cmd
}

func newCandidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidate",
		Short: "Manage candidates",
	}

	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Candidates().List(context.Background(), &client.ListOptions{Page: page, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("failed to list candidates: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			table := NewTable("ID", "NAME", "EMAIL", "STAGE")
			for _, c := range result.Data {
				table.AddRow(strconv.FormatInt(c.ID, 10), truncate(c.FullName, 30), c.Email, formatStatus(c.Stage))
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d candidates)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	var req client.CreateCandidateRequest
	var jobID int64
	create := &cobra.Command{
		Use:   "add",
		Short: "Add a candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.FullName == "" {
				req.FullName = promptInput("Full name: ")
			}
			if jobID > 0 {
				req.JobID = &jobID
			}
			c, err := apiClient.Candidates().Create(context.Background(), req)
			if err != nil {
				return quotaError("failed to add candidate", err)
			}
			fmt.Printf("Added candidate %d (%s)\n", c.ID, c.Stage)
			return nil
		},
	}
	create.Flags().StringVar(&req.FullName, "name", "", "full name")
	create.Flags().StringVar(&req.Email, "email", "", "email address")
	create.Flags().Int64Var(&jobID, "job", 0, "job posting id")
	create.Flags().StringVar(&req.Stage, "stage", "", "pipeline stage (default applied)")

	cmd.AddCommand(list, create)
	return cmd
}

func newInterviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Manage interviews",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List interviews created this month",
		RunE: func(cmd *cobra.Command, args []string) error {
			interviews, err := apiClient.Interviews().ListThisMonth(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list interviews: %w", err)
			}
			if getOutputFormat() != "table" {
				return printOutput(interviews)
			}

			table := NewTable("ID", "TITLE", "SCHEDULED")
			for _, iv := range interviews {
				table.AddRow(strconv.FormatInt(iv.ID, 10), truncate(iv.Title, 40), iv.ScheduledAt.Local().Format("2006-01-02 15:04"))
			}
			table.Render()
			return nil
		},
	}

	var title, at string
	var candidateID int64
	create := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule an interview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				title = promptInput("Title: ")
			}
			if at == "" {
				at = promptInput("When (YYYY-MM-DD HH:MM): ")
			}
			when, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", at, err)
			}

			req := client.CreateInterviewRequest{Title: title, ScheduledAt: when}
			if candidateID > 0 {
				req.CandidateID = &candidateID
			}
			iv, err := apiClient.Interviews().Create(context.Background(), req)
			if err != nil {
				return quotaError("failed to schedule interview", err)
			}
			fmt.Printf("Scheduled interview %d\n", iv.ID)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "interview title")
	create.Flags().StringVar(&at, "at", "", "local time, YYYY-MM-DD HH:MM")
	create.Flags().Int64Var(&candidateID, "candidate", 0, "candidate id")

	cmd.AddCommand(list, create)
	return cmd
}
