package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/render"
)

func newJobsCmd() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse the jobs the agent found",
	}
	jobsCmd.AddCommand(newListJobsCmd())
	return jobsCmd
}

func newListJobsCmd() *cobra.Command {
	def := jobs.DefaultSortState()

	listJobsCmd := &cobra.Command{
		Use:   "list",
		Short: "List all jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortFlag, _ := cmd.Flags().GetString("sort")
			orderFlag, _ := cmd.Flags().GetString("order")

			key, err := jobs.ParseSortKey(sortFlag)
			if err != nil {
				return err
			}
			dir, err := jobs.ParseDirection(orderFlag)
			if err != nil {
				return err
			}

			list, err := getAPIClient().ListJobs(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching jobs: %w", err)
			}
			list = jobs.Sort(list, key, dir)

			w := cmd.OutOrStdout()
			if ok, err := printStructured(w, outputFormat(cmd), newJobListOutput(list)); ok {
				return err
			}
			return render.NewTerminal(w).Jobs(list)
		},
	}

	listJobsCmd.Flags().String("sort", string(def.Key), "Sort column: title, company, location, date_posted, date_found")
	listJobsCmd.Flags().String("order", string(def.Direction), "Sort direction: asc or desc")
	return listJobsCmd
}
