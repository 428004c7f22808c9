package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/dashboard"
	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/logger"
	"github.com/jobdash/jobdash/internal/render"
)

// clearScreen moves the cursor home and clears the terminal
const clearScreen = "\033[H\033[2J"

func newWatchCmd() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the live dashboard in the terminal",
		Long: `Loads jobs, agent status and credential status, then redraws whenever they change.
With --start the agent is started and the dashboard refreshes every poll interval until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, _ := cmd.Flags().GetBool("start")
			once, _ := cmd.Flags().GetBool("once")
			sortFlag, _ := cmd.Flags().GetString("sort")

			d := dashboard.New(getAPIClient(), dashboard.Options{PollInterval: cfg.Poll.Interval})
			defer d.Close()

			if sortFlag != "" {
				if err := applySortFlag(d, sortFlag); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := d.Mount(ctx); err != nil {
				logger.Warnf("dashboard loaded with errors: %v", err)
			}

			if start {
				if _, err := d.StartAgent(ctx); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			term := render.NewTerminal(w)
			if once {
				return term.Dashboard(d.Snapshot())
			}
			return watchLoop(ctx, d, term, func() { fmt.Fprint(w, clearScreen) })
		},
	}

	watchCmd.Flags().Bool("start", false, "Start the agent before watching")
	watchCmd.Flags().Bool("once", false, "Draw the dashboard once and exit")
	watchCmd.Flags().String("sort", "", "Initial sort column (clicking the same column twice flips the order)")
	return watchCmd
}

// watchLoop redraws on every dashboard event until ctx ends
func watchLoop(ctx context.Context, d *dashboard.Composer, term *render.Terminal, clear func()) error {
	events, cancel := d.Subscribe()
	defer cancel()

	draw := func() error {
		clear()
		return term.Dashboard(d.Snapshot())
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := draw(); err != nil {
				return err
			}
		}
	}
}

// applySortFlag starts the dashboard sorted by key ascending
func applySortFlag(d *dashboard.Composer, key string) error {
	k, err := jobs.ParseSortKey(key)
	if err != nil {
		return err
	}
	d.SetSort(jobs.SortState{Key: k, Direction: jobs.Asc})
	return nil
}
