package types

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AgentStatus is the agent's self report, replaced whole on every poll
type AgentStatus struct {
	Status            string    `json:"status"`
	JobCount          int       `json:"job_count"`
	TotalJobsSearched int       `json:"total_jobs_searched"`
	StartTime         Timestamp `json:"start_time"`
	// RunningTime is preformatted by the agent ("1:02:03") and only present while it runs
	RunningTime *string `json:"running_time"`
}

// DefaultAgentStatus is what the dashboard shows before the first status arrives
func DefaultAgentStatus() AgentStatus {
	return AgentStatus{Status: "stopped"}
}

// State classifies the status string
func (s AgentStatus) State() AgentState {
	return ParseAgentState(s.Status)
}

// AgentStateKind enumerates the status strings the agent is known to report
type AgentStateKind int

const (
	// StateOther is any status string not listed below
	StateOther AgentStateKind = iota
	StateStopped
	StateRunning
	StateSearching
	StateWaiting
	StateStopping
	StateError
)

var stateKindNames = map[AgentStateKind]string{
	StateOther:     "other",
	StateStopped:   "stopped",
	StateRunning:   "running",
	StateSearching: "searching",
	StateWaiting:   "waiting",
	StateStopping:  "stopping",
	StateError:     "error",
}

func (k AgentStateKind) String() string {
	return stateKindNames[k]
}

// StatusClass is the visual bucket a state is drawn with
type StatusClass string

const (
	ClassRunning StatusClass = "running"
	ClassStopped StatusClass = "stopped"
	ClassWaiting StatusClass = "waiting"
)

// AgentState is the tagged form of AgentStatus.Status. Raw keeps the original string for StateOther.
type AgentState struct {
	Kind AgentStateKind
	Raw  string
}

// ParseAgentState maps a status string onto a known kind
func ParseAgentState(status string) AgentState {
	s := AgentState{Raw: status}
	switch {
	case status == "stopped":
		s.Kind = StateStopped
	case status == "running":
		s.Kind = StateRunning
	case status == "searching for jobs":
		s.Kind = StateSearching
	case status == "waiting for next crawl":
		s.Kind = StateWaiting
	case status == "stopping":
		s.Kind = StateStopping
	case strings.HasPrefix(status, "error"):
		s.Kind = StateError
	default:
		s.Kind = StateOther
	}
	return s
}

// Class returns the visual bucket. Unknown strings land in waiting.
func (s AgentState) Class() StatusClass {
	switch s.Kind {
	case StateRunning, StateSearching:
		return ClassRunning
	case StateStopped:
		return ClassStopped
	default:
		return ClassWaiting
	}
}

// Label is the status with its first letter upper-cased, "Unknown" when empty
func (s AgentState) Label() string {
	if s.Raw == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(s.Raw)
	return string(unicode.ToUpper(r)) + s.Raw[size:]
}

// Active reports whether the agent claims to be doing anything
func (s AgentState) Active() bool {
	return s.Kind != StateStopped
}
