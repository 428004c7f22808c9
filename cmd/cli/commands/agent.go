package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/dashboard"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/render"
)

func newAgentCmd() *cobra.Command {
	agentCmd := &cobra.Command{
		Use:   "agent",
		Short: "Control the job-search agent",
	}

	agentCmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the agent (requires stored LinkedIn credentials)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := getAPIClient()

			state, err := c.GetCredentialsStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error checking credentials: %w", err)
			}
			if !state.Set {
				return errs.ValidationError(dashboard.MsgCredentialsRequired)
			}

			ack, err := c.StartAgent(cmd.Context())
			if err != nil {
				return fmt.Errorf("error starting agent: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
			return nil
		},
	})

	agentCmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ack, err := getAPIClient().StopAgent(cmd.Context())
			if err != nil {
				return fmt.Errorf("error stopping agent: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
			return nil
		},
	})

	agentCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the agent status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := getAPIClient().GetAgentStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching agent status: %w", err)
			}

			w := cmd.OutOrStdout()
			if ok, err := printStructured(w, outputFormat(cmd), newStatusOutput(*status)); ok {
				return err
			}
			return render.NewTerminal(w).Status(*status)
		},
	})

	return agentCmd
}
