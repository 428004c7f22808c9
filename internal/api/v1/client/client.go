// Package client talks to the job-search agent's HTTP API.
package client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/types"
)

const (
	// DefaultBaseURL is where the agent API listens by default
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout is the default timeout for API requests
	DefaultTimeout = 30 * time.Second
	// RequestIDHeader carries a per-request id for correlating logs
	RequestIDHeader = "X-Request-ID"
)

// Messages for failures that carry no server text
const (
	MsgUnreachable     = "agent API unreachable"
	MsgInvalidResponse = "invalid response from agent API"
	MsgNotSent         = "request not sent"
)

// Operation names, used in RemoteError.Op
const (
	OpPing                 = "Ping"
	OpListJobs             = "ListJobs"
	OpGetAgentStatus       = "GetAgentStatus"
	OpStartAgent           = "StartAgent"
	OpStopAgent            = "StopAgent"
	OpGetCredentialsStatus = "GetCredentialsStatus"
	OpSetCredentials       = "SetCredentials"
)

// Client defines the interface for interacting with the agent API
type Client interface {
	// Jobs methods
	ListJobs(ctx context.Context) ([]types.Job, error)

	// Agent methods
	GetAgentStatus(ctx context.Context) (*types.AgentStatus, error)
	StartAgent(ctx context.Context) (*types.Ack, error)
	StopAgent(ctx context.Context) (*types.Ack, error)

	// Credentials methods
	GetCredentialsStatus(ctx context.Context) (*types.CredentialState, error)
	SetCredentials(ctx context.Context, creds types.Credentials) (*types.Ack, error)

	// Ping checks the API root
	Ping(ctx context.Context) (*PingResponse, error)
}

// ClientOptions contains configuration options for the API client
type ClientOptions struct {
	// BaseURL is the base URL of the agent API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration

	// RateLimit caps requests per second; 0 disables pacing
	RateLimit float64

	// Burst is the limiter's bucket size
	Burst int
}

// DefaultOptions returns the default client options
func DefaultOptions() *ClientOptions {
	return &ClientOptions{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient creates a new API client with the given options
func NewClient(opts *ClientOptions) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &APIClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: timeout,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	agent.Set(RequestIDHeader, uuid.NewString())

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// executeRequest waits for the limiter, sends the request and decodes the response.
// Every failure comes back as a RemoteError tagged with op.
func (c *APIClient) executeRequest(ctx context.Context, op, method, endpoint string, body, response interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errs.RemoteError(op, 0, MsgNotSent, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return errs.RemoteError(op, 0, MsgNotSent, err)
	}

	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return errs.RemoteError(op, 0, MsgNotSent, err)
	}

	if err := c.doRequest(agent, response); err != nil {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return errs.RemoteError(op, fiberErr.Code, fiberErr.Message, err)
		}
		var decodeErr *decodeError
		if stderrors.As(err, &decodeErr) {
			return errs.RemoteError(op, decodeErr.StatusCode, MsgInvalidResponse, err)
		}
		return errs.RemoteError(op, 0, MsgUnreachable, err)
	}
	return nil
}

// decodeError is a successful answer whose body could not be read
type decodeError struct {
	StatusCode int
	Err        error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("error decoding response: %v", e.Err)
}

func (e *decodeError) Unwrap() error {
	return e.Err
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errList := agent.Bytes()
	if len(errList) > 0 {
		return fmt.Errorf("error sending request: %w", errList[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if msg := errResp.Text(); msg != "" {
				return &fiber.Error{
					Code:    statusCode,
					Message: msg,
				}
			}
		}

		return &fiber.Error{
			Code:    statusCode,
			Message: http.StatusText(statusCode),
		}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return &decodeError{StatusCode: statusCode, Err: err}
		}
	}

	return nil
}

// Jobs methods implementation

// ListJobs returns every job the agent has found
func (c *APIClient) ListJobs(ctx context.Context) ([]types.Job, error) {
	var response []types.Job
	if err := c.executeRequest(ctx, OpListJobs, http.MethodGet, JobsPath, nil, &response); err != nil {
		return nil, err
	}
	if response == nil {
		response = []types.Job{}
	}
	return response, nil
}

// Agent methods implementation

// GetAgentStatus returns the agent's current status
func (c *APIClient) GetAgentStatus(ctx context.Context) (*types.AgentStatus, error) {
	var response types.AgentStatus
	if err := c.executeRequest(ctx, OpGetAgentStatus, http.MethodGet, AgentStatusPath, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// StartAgent asks the agent to begin crawling
func (c *APIClient) StartAgent(ctx context.Context) (*types.Ack, error) {
	var response types.Ack
	if err := c.executeRequest(ctx, OpStartAgent, http.MethodPost, AgentStartPath, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// StopAgent asks the agent to stop after its current step
func (c *APIClient) StopAgent(ctx context.Context) (*types.Ack, error) {
	var response types.Ack
	if err := c.executeRequest(ctx, OpStopAgent, http.MethodPost, AgentStopPath, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Credentials methods implementation

// GetCredentialsStatus reports whether the agent has LinkedIn credentials stored
func (c *APIClient) GetCredentialsStatus(ctx context.Context) (*types.CredentialState, error) {
	var response types.CredentialState
	if err := c.executeRequest(ctx, OpGetCredentialsStatus, http.MethodGet, CredentialsStatusPath, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SetCredentials stores LinkedIn credentials on the agent
func (c *APIClient) SetCredentials(ctx context.Context, creds types.Credentials) (*types.Ack, error) {
	var response types.Ack
	if err := c.executeRequest(ctx, OpSetCredentials, http.MethodPost, CredentialsPath, creds, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Health check implementation

// Ping fetches the API root banner
func (c *APIClient) Ping(ctx context.Context) (*PingResponse, error) {
	var response PingResponse
	if err := c.executeRequest(ctx, OpPing, http.MethodGet, RootPath, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
