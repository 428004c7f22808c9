// Package events fans dashboard change notifications out to subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types
const (
	TypeJobs        = "jobs"
	TypeStatus      = "status"
	TypeCredentials = "credentials"
	TypeSort        = "sort"
	TypePolling     = "polling"
)

// Version of the event envelope
const Version = 1

type Event struct {
	Type    string          `json:"type"`
	Version int             `json:"v"`
	At      time.Time       `json:"at"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// New builds an event; data that cannot be marshalled is left out
func New(typ string, data any) Event {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	return Event{
		Type:    typ,
		Version: Version,
		At:      time.Now().UTC(),
		Data:    raw,
	}
}
