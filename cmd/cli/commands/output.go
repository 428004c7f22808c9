package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jobdash/jobdash/internal/render"
	"github.com/jobdash/jobdash/internal/types"
)

// output formats
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q (valid: table, json, yaml)", format)
}

// jobOutput is the printed form of a job
type jobOutput struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Company    string `json:"company" yaml:"company"`
	Location   string `json:"location" yaml:"location"`
	DatePosted string `json:"date_posted" yaml:"date_posted"`
	DateFound  string `json:"date_found" yaml:"date_found"`
	Visa       string `json:"visa_sponsorship" yaml:"visa_sponsorship"`
	URL        string `json:"url" yaml:"url"`
}

// jobListOutput is the printed form of a job list
type jobListOutput struct {
	Jobs []jobOutput `json:"jobs" yaml:"jobs"`
}

func newJobListOutput(list []types.Job) jobListOutput {
	out := jobListOutput{Jobs: make([]jobOutput, len(list))}
	for i, j := range list {
		out.Jobs[i] = jobOutput{
			ID:         j.ID.String(),
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			DatePosted: render.FormatDate(j.DatePosted),
			DateFound:  render.FormatDate(j.DateFound),
			Visa:       render.VisaText(j),
			URL:        j.URL,
		}
	}
	return out
}

// statusOutput is the printed form of the agent status
type statusOutput struct {
	Status            string `json:"status" yaml:"status"`
	Label             string `json:"label" yaml:"label"`
	Class             string `json:"class" yaml:"class"`
	JobCount          int    `json:"job_count" yaml:"job_count"`
	TotalJobsSearched int    `json:"total_jobs_searched" yaml:"total_jobs_searched"`
	RunningTime       string `json:"running_time" yaml:"running_time"`
	StartTime         string `json:"start_time" yaml:"start_time"`
}

func newStatusOutput(s types.AgentStatus) statusOutput {
	state := s.State()
	return statusOutput{
		Status:            s.Status,
		Label:             state.Label(),
		Class:             string(state.Class()),
		JobCount:          s.JobCount,
		TotalJobsSearched: s.TotalJobsSearched,
		RunningTime:       render.RunningTime(s),
		StartTime:         render.FormatDateTime(s.StartTime),
	}
}

// printStructured writes v as json or yaml. It reports false for the table format.
func printStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case outputJSON:
		prettyJSON, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("error formatting response: %w", err)
		}
		_, err = fmt.Fprintln(w, string(prettyJSON))
		return true, err
	case outputYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("error formatting response: %w", err)
		}
		_, err = w.Write(b)
		return true, err
	}
	return false, nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString(flagOutput)
	return format
}
