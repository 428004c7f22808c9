package render

import (
	"github.com/jobdash/jobdash/internal/dashboard"
	"github.com/jobdash/jobdash/internal/types"
)

// JobRow is a job with its display strings
type JobRow struct {
	types.Job
	PostedText string `json:"posted_text"`
	FoundText  string `json:"found_text"`
	VisaText   string `json:"visa_text"`
}

// View is the dashboard as served to the browser
type View struct {
	dashboard.Snapshot
	Rows            []JobRow `json:"rows"`
	RunningTimeText string   `json:"running_time_text"`
	StartTimeText   string   `json:"start_time_text"`
	Warning         string   `json:"warning,omitempty"`
	EmptyText       string   `json:"empty_text,omitempty"`
}

// NewView adds display strings to a snapshot
func NewView(s dashboard.Snapshot) View {
	v := View{
		Snapshot:        s,
		Rows:            make([]JobRow, 0, len(s.Jobs)),
		RunningTimeText: RunningTime(s.Status),
		StartTimeText:   FormatDateTime(s.Status.StartTime),
	}
	for _, j := range s.Jobs {
		v.Rows = append(v.Rows, JobRow{
			Job:        j,
			PostedText: FormatDate(j.DatePosted),
			FoundText:  FormatDate(j.DateFound),
			VisaText:   VisaText(j),
		})
	}
	if s.Controls.CredentialWarning {
		v.Warning = CredentialWarning
	}
	if len(s.Jobs) == 0 && !s.JobsLoading {
		v.EmptyText = EmptyJobs
	}
	return v
}
