// Package credentials submits LinkedIn credentials to the agent.
package credentials

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/jobdash/jobdash/internal/api/v1/client"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/logger"
	"github.com/jobdash/jobdash/internal/types"
)

// Messages shown to the user
const (
	MsgRequired = "Email and password are required"
	MsgSaved    = "LinkedIn credentials saved successfully!"
	MsgFailed   = "Failed to save credentials"
)

// Setter is the part of the agent client the flow needs
type Setter interface {
	SetCredentials(ctx context.Context, creds types.Credentials) (*types.Ack, error)
}

// Result is the outcome of a successful submission
type Result struct {
	Set     bool   `json:"set"`
	Message string `json:"message"`
}

// Flow validates and sends credentials. One submission may be in flight at a time.
type Flow struct {
	setter     Setter
	submitting atomic.Bool
}

// NewFlow creates a Flow
func NewFlow(setter Setter) *Flow {
	return &Flow{setter: setter}
}

// Submitting reports whether a submission is in flight
func (f *Flow) Submitting() bool {
	return f.submitting.Load()
}

// Submit sends one request and never retries. Empty fields fail locally without a request.
// A remote failure carries the server's message when it sent one.
func (f *Flow) Submit(ctx context.Context, email, password string) (*Result, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, errs.ValidationError(MsgRequired)
	}

	if !f.submitting.CompareAndSwap(false, true) {
		return nil, errs.ErrSubmitInProgress
	}
	defer f.submitting.Store(false)

	_, err := f.setter.SetCredentials(ctx, types.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		logger.WarnWithFields("credential submission failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, submitError(err)
	}

	logger.Info("LinkedIn credentials saved")
	return &Result{Set: true, Message: MsgSaved}, nil
}

// fromServer reports whether de carries text the agent wrote, not a status text or a client-side label
func fromServer(de *errs.DomainError) bool {
	return de.StatusCode != 0 && de.Message != "" &&
		de.Message != http.StatusText(de.StatusCode) &&
		de.Message != client.MsgInvalidResponse
}

// submitError keeps the server's message and replaces everything else with the generic text
func submitError(err error) error {
	var de *errs.DomainError
	if stderrors.As(err, &de) && de.Type == errs.ErrTypeRemote {
		if fromServer(de) {
			return errs.RemoteError(client.OpSetCredentials, de.StatusCode, de.Message, err)
		}
		return errs.RemoteError(client.OpSetCredentials, de.StatusCode, MsgFailed, err)
	}
	return errs.RemoteError(client.OpSetCredentials, 0, MsgFailed, err)
}
