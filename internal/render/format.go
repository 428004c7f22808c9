// Package render turns dashboard state into text for terminals and JSON views.
package render

import (
	"github.com/jobdash/jobdash/internal/types"
)

// Display texts
const (
	NotAvailable      = "N/A"
	VisaAvailable     = "Available"
	VisaUnknown       = "Unknown"
	EmptyJobs         = "No jobs found yet"
	CredentialWarning = "Please set your LinkedIn credentials above to enable the agent."
)

// Date layouts
const (
	DateLayout     = "Jan 2, 2006"
	DateTimeLayout = "Jan 2, 2006, 03:04 PM"
)

// FormatDate renders a job date, N/A when absent or unparsable
func FormatDate(ts types.Timestamp) string {
	if !ts.Valid {
		return NotAvailable
	}
	return ts.Time.Format(DateLayout)
}

// FormatDateTime renders the agent start time
func FormatDateTime(ts types.Timestamp) string {
	if !ts.Valid {
		return NotAvailable
	}
	return ts.Time.Format(DateTimeLayout)
}

// VisaText is the sponsorship chip text
func VisaText(j types.Job) string {
	if j.SponsorsVisa() {
		return VisaAvailable
	}
	return VisaUnknown
}

// RunningTime returns the agent's preformatted running time, N/A when absent
func RunningTime(s types.AgentStatus) string {
	if s.RunningTime == nil || *s.RunningTime == "" {
		return NotAvailable
	}
	return *s.RunningTime
}
