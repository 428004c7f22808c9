package client

import (
	"encoding/json"
	"strings"
)

// ErrorResponse is the error body the agent API may return.
// FastAPI reports errors as {"detail": "..."}; detail can also be a list of validation issues.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// Text returns the most specific message in the body, or "" when there is none
func (e ErrorResponse) Text() string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	if len(e.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(e.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
			return strings.TrimSpace(detail)
		}
	}
	return strings.TrimSpace(e.Error)
}

// PingResponse is the body of the API root
type PingResponse struct {
	Message string `json:"message"`
}
