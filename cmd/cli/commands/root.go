package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/api/v1/client"
	"github.com/jobdash/jobdash/internal/config"
	"github.com/jobdash/jobdash/internal/logger"
)

// flag names
const (
	flagConfig   = "config"
	flagAPIURL   = "api-url"
	flagTimeout  = "timeout"
	flagOutput   = "output"
	flagLogLevel = "log-level"
)

var (
	// clientInstance is the shared API client; tests replace it with a mock
	clientInstance client.Client
	// cfg is the configuration resolved by PersistentPreRunE
	cfg *config.Config
)

// NewRootCmd builds the command tree. Flags live on fresh commands so repeated runs start clean.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jobdash",
		Short: "jobdash - dashboard for the LinkedIn job-search agent",
		Long: `jobdash watches and controls a job-search agent through its HTTP API.
It lists the jobs the agent found, starts and stops the agent, stores LinkedIn
credentials, and serves the dashboard as JSON for a browser.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: preRun,
	}

	rootCmd.PersistentFlags().StringP(flagConfig, "c", "", "Config file (default ./jobdash.yaml)")
	rootCmd.PersistentFlags().StringP(flagAPIURL, "s", "", "Agent API base URL (env: JOBDASH_API_BASE_URL, default "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().Duration(flagTimeout, 0, "Agent API request timeout (env: JOBDASH_API_TIMEOUT)")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", outputTable, "Output format: table, json or yaml")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "Log level (env: LOG_LEVEL)")

	rootCmd.AddCommand(newJobsCmd())
	rootCmd.AddCommand(newAgentCmd())
	rootCmd.AddCommand(newCredentialsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// preRun resolves configuration with flag > env > file > default precedence and builds the client
func preRun(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed(flagAPIURL) {
		loaded.API.BaseURL, _ = cmd.Flags().GetString(flagAPIURL)
	}
	if cmd.Flags().Changed(flagTimeout) {
		loaded.API.Timeout, _ = cmd.Flags().GetDuration(flagTimeout)
	}
	if cmd.Flags().Changed(flagLogLevel) {
		loaded.Log.Level, _ = cmd.Flags().GetString(flagLogLevel)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString(flagOutput)
	if err := validateOutput(output); err != nil {
		return err
	}

	logger.Configure(logger.Options{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		File:   loaded.Log.File,
	})
	cfg = loaded

	if clientInstance != nil {
		return nil
	}
	clientInstance, err = client.NewClient(&client.ClientOptions{
		BaseURL:   loaded.API.BaseURL,
		Timeout:   loaded.API.Timeout,
		RateLimit: loaded.API.RateLimit,
		Burst:     loaded.API.Burst,
	})
	if err != nil {
		return fmt.Errorf("error creating API client: %w", err)
	}
	logger.Debugf("agent API: %s", loaded.API.BaseURL)
	return nil
}

// getAPIClient returns the client built by preRun
func getAPIClient() client.Client {
	return clientInstance
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
