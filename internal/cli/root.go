package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pratik-mahalle/hireloop/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configDirName = ".hireloop"

var (
	cfgFile      string
	outputFormat string
	noColor      bool
	serverURL    string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "hireloop",
	Short: "hireloop CLI - recruiting workspace and plan management",
	Long: `hireloop CLI provides command-line access to the hireloop platform
for managing job postings, candidates, interviews and team seats, and for
checking plan usage and upgrading subscriptions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip client init for config and auth login commands
		if cmd.Name() == "init" || cmd.Name() == "set" || cmd.Name() == "get" ||
			(cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}
		if cmd.Name() == "login" || cmd.Name() == "register" || cmd.Name() == "verify-email" ||
			cmd.Name() == "refresh" || cmd.Name() == "logout" ||
			(cmd.Name() == "list" && cmd.Parent() != nil && cmd.Parent().Name() == "plans") {
			return initClient()
		}
		return initAuthenticatedClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

var errNotAuthenticated = errors.New("not authenticated. Run 'hireloop auth login' first")

// Process exit codes, so scripts can tell a plan limit from a failure
const (
	ExitOK           = 0
	ExitError        = 1
	ExitUnauthorized = 2
	ExitPlanLimit    = 3
	ExitUnavailable  = 4
)

// ExitCode maps a command error to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, errNotAuthenticated) {
			return ExitUnauthorized
		}
		return ExitError
	}
	switch {
	case apiErr.IsUnauthorized():
		return ExitUnauthorized
	case apiErr.IsQuotaExceeded(), apiErr.IsRedirect() && strings.Contains(apiErr.Location, "/pricing"):
		return ExitPlanLimit
	case apiErr.IsServerError():
		return ExitUnavailable
	}
	return ExitError
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.hireloop/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	// Register all subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newUsageCmd())
	rootCmd.AddCommand(newPlansCmd())
	rootCmd.AddCommand(newBillingCmd())
	rootCmd.AddCommand(newJobCmd())
	rootCmd.AddCommand(newCandidateCmd())
	rootCmd.AddCommand(newInterviewCmd())
	rootCmd.AddCommand(newTeamCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := filepath.Join(home, configDirName)
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("HIRELOOP")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})
	// public endpoints personalise when a session exists
	if token := viper.GetString("auth.token"); token != "" {
		apiClient.SetToken(token)
	}
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	if apiClient.GetToken() == "" {
		return errNotAuthenticated
	}
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
