package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/jobdash/jobdash/internal/dashboard"
	"github.com/jobdash/jobdash/internal/types"
)

// Status colours per visual class
var classColors = map[types.StatusClass]lipgloss.Color{
	types.ClassRunning: lipgloss.Color("#22c55e"),
	types.ClassStopped: lipgloss.Color("#ef4444"),
	types.ClassWaiting: lipgloss.Color("#f59e0b"),
}

// Terminal writes dashboard views to w. Colours are dropped when w is not a terminal.
type Terminal struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	muted    lipgloss.Style
	warn     lipgloss.Style
}

func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:        w,
		renderer: r,
		title:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Faint(true),
		warn:     r.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
	}
}

// StatusBadge renders the status label in its class colour
func (t *Terminal) StatusBadge(state types.AgentState) string {
	return t.renderer.NewStyle().
		Bold(true).
		Foreground(classColors[state.Class()]).
		Render(state.Label())
}

// Status writes the agent panel
func (t *Terminal) Status(s types.AgentStatus) error {
	lines := []string{
		t.title.Render("Agent"),
		fmt.Sprintf("  Status:         %s", t.StatusBadge(s.State())),
		fmt.Sprintf("  Jobs found:     %d", s.JobCount),
		fmt.Sprintf("  Jobs searched:  %d", s.TotalJobsSearched),
		fmt.Sprintf("  Running time:   %s", RunningTime(s)),
		fmt.Sprintf("  Started:        %s", FormatDateTime(s.StartTime)),
	}
	_, err := fmt.Fprintln(t.w, strings.Join(lines, "\n"))
	return err
}

// Jobs writes the job table in the given order
func (t *Terminal) Jobs(list []types.Job) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(t.w, t.muted.Render(EmptyJobs))
		return err
	}

	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tPOSTED\tFOUND\tVISA\tURL")
	for _, j := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.Title, j.Company, j.Location,
			FormatDate(j.DatePosted), FormatDate(j.DateFound),
			VisaText(j), j.URL)
	}
	return tw.Flush()
}

// Dashboard writes the whole dashboard
func (t *Terminal) Dashboard(s dashboard.Snapshot) error {
	if err := t.Status(s.Status); err != nil {
		return err
	}
	if s.Controls.CredentialWarning {
		if _, err := fmt.Fprintln(t.w, t.warn.Render(CredentialWarning)); err != nil {
			return err
		}
	}

	polling := "off"
	if s.Polling {
		polling = "on"
	}
	header := fmt.Sprintf("Jobs (%d) sorted by %s %s, auto-refresh %s", len(s.Jobs), s.Sort.Key, s.Sort.Direction, polling)
	if _, err := fmt.Fprintln(t.w, "\n"+t.title.Render(header)); err != nil {
		return err
	}
	if s.JobsLoading {
		_, err := fmt.Fprintln(t.w, t.muted.Render("Loading..."))
		return err
	}
	return t.Jobs(s.Jobs)
}
