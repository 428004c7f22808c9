// Package types holds the records exchanged with the agent API.
package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Job is a posting discovered by the agent. A poll replaces the whole list, records are never patched.
type Job struct {
	ID          JobID  `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	// VisaSponsorship is nil when the agent could not tell
	VisaSponsorship *bool     `json:"visa_sponsorship,omitempty"`
	DatePosted      Timestamp `json:"date_posted"`
	DateFound       Timestamp `json:"date_found"`
}

// JobID is the agent's job identifier. The agent copies LinkedIn's jobId verbatim, so it may
// arrive as a JSON string or a number; both are kept in their text form.
type JobID string

func (id JobID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a string, a number, null, or anything else (kept as raw text)
func (id *JobID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = JobID(n.String())
		return nil
	}
	*id = JobID(b)
	return nil
}

// SponsorsVisa reports whether sponsorship is known to be available
func (j Job) SponsorsVisa() bool {
	return j.VisaSponsorship != nil && *j.VisaSponsorship
}

// Timestamp keeps the agent's raw date string next to its parsed value.
// The agent writes naive ISO strings ("2024-03-01T09:15:02.123456"), which are read as UTC.
type Timestamp struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// ParseTimestamp parses raw leniently; an unparsable value is kept but marked invalid
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return Timestamp{Raw: raw}
	}
	return Timestamp{Raw: raw, Time: t, Valid: true}
}

// NewTimestamp wraps an already parsed time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Raw: t.Format(time.RFC3339Nano), Time: t, Valid: true}
}

// IsZero reports whether the value was absent
func (t Timestamp) IsZero() bool {
	return t.Raw == "" && !t.Valid
}

// Compare orders timestamps chronologically. Invalid or absent values are the minimum.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case !t.Valid && !other.Valid:
		return 0
	case !t.Valid:
		return -1
	case !other.Valid:
		return 1
	}
	return t.Time.Compare(other.Time)
}

// UnmarshalJSON accepts a string, null, or anything else (kept raw and invalid)
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = Timestamp{Raw: string(b)}
		return nil
	}
	*t = ParseTimestamp(s)
	return nil
}

// MarshalJSON writes the raw value back so the agent's format survives a round trip
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}
