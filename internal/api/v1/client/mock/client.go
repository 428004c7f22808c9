// Package mock provides a function-hook Client for tests.
package mock

import (
	"context"
	"sync"

	"github.com/jobdash/jobdash/internal/api/v1/client"
	"github.com/jobdash/jobdash/internal/types"
)

// MockClient implements the Client interface for testing.
// It is safe for concurrent use; read the call slices through the count helpers while a poller runs.
type MockClient struct {
	// Function fields that can be set to mock behavior
	ListJobsFn             func(ctx context.Context) ([]types.Job, error)
	GetAgentStatusFn       func(ctx context.Context) (*types.AgentStatus, error)
	StartAgentFn           func(ctx context.Context) (*types.Ack, error)
	StopAgentFn            func(ctx context.Context) (*types.Ack, error)
	GetCredentialsStatusFn func(ctx context.Context) (*types.CredentialState, error)
	SetCredentialsFn       func(ctx context.Context, creds types.Credentials) (*types.Ack, error)
	PingFn                 func(ctx context.Context) (*client.PingResponse, error)

	mu sync.Mutex

	// Call tracking for verification
	ListJobsCalls []struct {
		Ctx context.Context
	}
	GetAgentStatusCalls []struct {
		Ctx context.Context
	}
	StartAgentCalls []struct {
		Ctx context.Context
	}
	StopAgentCalls []struct {
		Ctx context.Context
	}
	GetCredentialsStatusCalls []struct {
		Ctx context.Context
	}
	SetCredentialsCalls []struct {
		Ctx   context.Context
		Creds types.Credentials
	}
	PingCalls []struct {
		Ctx context.Context
	}
}

// Ensure MockClient implements Client interface
var _ client.Client = (*MockClient)(nil)

// ListJobs mocks the ListJobs method
func (m *MockClient) ListJobs(ctx context.Context) ([]types.Job, error) {
	m.mu.Lock()
	m.ListJobsCalls = append(m.ListJobsCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.ListJobsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	// Default mock implementation
	return []types.Job{
		{
			ID:        "1",
			Title:     "Backend Engineer",
			Company:   "Acme",
			Location:  "Remote",
			URL:       "https://www.linkedin.com/jobs/view/1",
			DateFound: types.ParseTimestamp("2024-01-01T00:00:00"),
		},
		{
			ID:        "2",
			Title:     "Site Reliability Engineer",
			Company:   "Initech",
			Location:  "New York, NY",
			URL:       "https://www.linkedin.com/jobs/view/2",
			DateFound: types.ParseTimestamp("2024-01-02T00:00:00"),
		},
	}, nil
}

// GetAgentStatus mocks the GetAgentStatus method
func (m *MockClient) GetAgentStatus(ctx context.Context) (*types.AgentStatus, error) {
	m.mu.Lock()
	m.GetAgentStatusCalls = append(m.GetAgentStatusCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.GetAgentStatusFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	status := types.DefaultAgentStatus()
	return &status, nil
}

// StartAgent mocks the StartAgent method
func (m *MockClient) StartAgent(ctx context.Context) (*types.Ack, error) {
	m.mu.Lock()
	m.StartAgentCalls = append(m.StartAgentCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.StartAgentFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return &types.Ack{Message: "Agent started successfully"}, nil
}

// StopAgent mocks the StopAgent method
func (m *MockClient) StopAgent(ctx context.Context) (*types.Ack, error) {
	m.mu.Lock()
	m.StopAgentCalls = append(m.StopAgentCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.StopAgentFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return &types.Ack{Message: "Agent is stopping"}, nil
}

// GetCredentialsStatus mocks the GetCredentialsStatus method
func (m *MockClient) GetCredentialsStatus(ctx context.Context) (*types.CredentialState, error) {
	m.mu.Lock()
	m.GetCredentialsStatusCalls = append(m.GetCredentialsStatusCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.GetCredentialsStatusFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return &types.CredentialState{Set: true}, nil
}

// SetCredentials mocks the SetCredentials method
func (m *MockClient) SetCredentials(ctx context.Context, creds types.Credentials) (*types.Ack, error) {
	m.mu.Lock()
	m.SetCredentialsCalls = append(m.SetCredentialsCalls, struct {
		Ctx   context.Context
		Creds types.Credentials
	}{Ctx: ctx, Creds: creds})
	fn := m.SetCredentialsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, creds)
	}
	return &types.Ack{Message: "LinkedIn credentials saved successfully"}, nil
}

// Ping mocks the Ping method
func (m *MockClient) Ping(ctx context.Context) (*client.PingResponse, error) {
	m.mu.Lock()
	m.PingCalls = append(m.PingCalls, struct {
		Ctx context.Context
	}{Ctx: ctx})
	fn := m.PingFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return &client.PingResponse{Message: "LinkedIn Job Crawler API"}, nil
}

// Count helpers

// ListJobsCount returns how many times ListJobs was called
func (m *MockClient) ListJobsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListJobsCalls)
}

// GetAgentStatusCount returns how many times GetAgentStatus was called
func (m *MockClient) GetAgentStatusCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetAgentStatusCalls)
}

// StartAgentCount returns how many times StartAgent was called
func (m *MockClient) StartAgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StartAgentCalls)
}

// StopAgentCount returns how many times StopAgent was called
func (m *MockClient) StopAgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StopAgentCalls)
}

// GetCredentialsStatusCount returns how many times GetCredentialsStatus was called
func (m *MockClient) GetCredentialsStatusCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetCredentialsStatusCalls)
}

// SetCredentialsCount returns how many times SetCredentials was called
func (m *MockClient) SetCredentialsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SetCredentialsCalls)
}

// TotalCalls returns the number of requests of every kind
func (m *MockClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListJobsCalls) + len(m.GetAgentStatusCalls) + len(m.StartAgentCalls) +
		len(m.StopAgentCalls) + len(m.GetCredentialsStatusCalls) + len(m.SetCredentialsCalls) +
		len(m.PingCalls)
}
