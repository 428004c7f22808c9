package dashboard

import (
	"time"

	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/poller"
	"github.com/jobdash/jobdash/internal/types"
)

// Controls tells which actions the dashboard offers right now
type Controls struct {
	StartEnabled bool `json:"start_enabled"`
	StopEnabled  bool `json:"stop_enabled"`
	// CredentialWarning is shown while no credentials are stored
	CredentialWarning bool `json:"credential_warning"`
	Submitting        bool `json:"submitting"`
}

// Snapshot is a consistent copy of the dashboard state
type Snapshot struct {
	Jobs        []types.Job           `json:"jobs"`
	JobsLoading bool                  `json:"jobs_loading"`
	Sort        jobs.SortState        `json:"sort"`
	Status      types.AgentStatus     `json:"agent_status"`
	StatusLabel string                `json:"status_label"`
	StatusClass types.StatusClass     `json:"status_class"`
	Credentials types.CredentialState `json:"credentials"`
	Polling     bool                  `json:"polling"`
	Controls    Controls              `json:"controls"`
	// LastSuccess is when each poll fetch kind last succeeded; absent until one has
	LastSuccess map[poller.Kind]time.Time `json:"last_success,omitempty"`
}

// State returns the agent state variant of the snapshot's status
func (s Snapshot) State() types.AgentState {
	return s.Status.State()
}

// Snapshot returns the current state with jobs ordered by the sort state
func (d *Composer) Snapshot() Snapshot {
	polling := d.Polling()
	submitting := d.flow.Submitting()

	last := make(map[poller.Kind]time.Time, 2)
	for _, k := range []poller.Kind{poller.KindJobs, poller.KindStatus} {
		if t := d.poller.LastSuccess(k); !t.IsZero() {
			last[k] = t
		}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	state := d.status.State()
	return Snapshot{
		Jobs:        d.sort.Apply(d.jobList),
		JobsLoading: d.jobsLoading,
		Sort:        d.sort,
		Status:      d.status,
		StatusLabel: state.Label(),
		StatusClass: state.Class(),
		Credentials: d.creds,
		Polling:     polling,
		Controls: Controls{
			StartEnabled:      d.creds.Set && !polling,
			StopEnabled:       polling,
			CredentialWarning: !d.creds.Set,
			Submitting:        submitting,
		},
		LastSuccess: last,
	}
}
