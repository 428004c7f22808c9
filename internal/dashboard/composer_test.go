package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdash/jobdash/internal/api/v1/client"
	"github.com/jobdash/jobdash/internal/api/v1/client/mock"
	"github.com/jobdash/jobdash/internal/credentials"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/events"
	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/poller"
	"github.com/jobdash/jobdash/internal/types"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop() {}

type manualTickers struct {
	mu       sync.Mutex
	tickers  []*manualTicker
	interval time.Duration
}

func (m *manualTickers) New(d time.Duration) poller.Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	m.tickers = append(m.tickers, t)
	m.interval = d
	return t
}

func (m *manualTickers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

func (m *manualTickers) last() *manualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickers[len(m.tickers)-1]
}

func newTestComposer(m *mock.MockClient) (*Composer, *manualTickers) {
	tickers := &manualTickers{}
	d := New(m, Options{NewTicker: tickers.New})
	return d, tickers
}

func waitForPairs(t *testing.T, m *mock.MockClient, jobsCalls, statusCalls int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.ListJobsCount() == jobsCalls && m.GetAgentStatusCount() == statusCalls
	}, waitFor, tick, "want %d jobs and %d status fetches", jobsCalls, statusCalls)
}

func TestDefaults(t *testing.T) {
	d, _ := newTestComposer(&mock.MockClient{})
	defer d.Close()

	s := d.Snapshot()
	assert.Empty(t, s.Jobs)
	assert.NotNil(t, s.Jobs)
	assert.True(t, s.JobsLoading)
	assert.Equal(t, "stopped", s.Status.Status)
	assert.Equal(t, "Stopped", s.StatusLabel)
	assert.Equal(t, types.ClassStopped, s.StatusClass)
	assert.False(t, s.Credentials.Set)
	assert.Equal(t, jobs.DefaultSortState(), s.Sort)
	assert.Equal(t, Controls{CredentialWarning: true}, s.Controls)
	assert.Empty(t, s.LastSuccess)
}

func TestMount(t *testing.T) {
	m := &mock.MockClient{
		GetAgentStatusFn: func(ctx context.Context) (*types.AgentStatus, error) {
			return &types.AgentStatus{Status: "searching for jobs", JobCount: 2}, nil
		},
	}
	d, _ := newTestComposer(m)
	defer d.Close()

	require.NoError(t, d.Mount(context.Background()))

	s := d.Snapshot()
	assert.False(t, s.JobsLoading)
	require.Len(t, s.Jobs, 2)
	// newest first by default
	assert.Equal(t, types.JobID("2"), s.Jobs[0].ID)
	assert.Equal(t, types.StateSearching, s.State().Kind)
	assert.Equal(t, types.ClassRunning, s.StatusClass)
	assert.True(t, s.Credentials.Set)
	assert.True(t, s.Controls.StartEnabled)
	assert.False(t, s.Controls.StopEnabled)
	assert.False(t, s.Polling)
	assert.Equal(t, 1, m.GetCredentialsStatusCount())
}

func TestMountFailures(t *testing.T) {
	m := &mock.MockClient{
		ListJobsFn: func(ctx context.Context) ([]types.Job, error) {
			return nil, errs.RemoteError(client.OpListJobs, 0, "agent API unreachable", fmt.Errorf("refused"))
		},
		GetCredentialsStatusFn: func(ctx context.Context) (*types.CredentialState, error) {
			return nil, errs.RemoteError(client.OpGetCredentialsStatus, 500, "Internal Server Error", fmt.Errorf("500"))
		},
	}
	d, _ := newTestComposer(m)
	defer d.Close()

	err := d.Mount(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsRemote(err))

	s := d.Snapshot()
	assert.False(t, s.JobsLoading, "a failed first response still ends loading")
	assert.Empty(t, s.Jobs)
	assert.False(t, s.Credentials.Set)
	assert.Equal(t, "stopped", s.Status.Status)
}

func TestStartAgentRequiresCredentials(t *testing.T) {
	m := &mock.MockClient{
		GetCredentialsStatusFn: func(ctx context.Context) (*types.CredentialState, error) {
			return &types.CredentialState{Set: false}, nil
		},
	}
	d, tickers := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.StartAgent(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, MsgCredentialsRequired, errs.UserMessage(err))
	assert.Equal(t, 0, m.StartAgentCount())
	assert.Equal(t, 0, tickers.count())
	assert.False(t, d.Polling())
}

func TestStartAgentRemoteFailure(t *testing.T) {
	m := &mock.MockClient{
		StartAgentFn: func(ctx context.Context) (*types.Ack, error) {
			return nil, errs.RemoteError(client.OpStartAgent, http.StatusBadRequest, "Agent is already running", fmt.Errorf("400"))
		},
	}
	d, tickers := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.StartAgent(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Agent is already running", errs.UserMessage(err))
	assert.False(t, d.Polling())
	assert.Equal(t, 0, tickers.count())
}

func TestStartAgentWhilePolling(t *testing.T) {
	m := &mock.MockClient{}
	d, tickers := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.StartAgent(context.Background())
	require.NoError(t, err)
	require.True(t, d.Polling())
	assert.False(t, d.Snapshot().Controls.StartEnabled)

	_, err = d.StartAgent(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, MsgAlreadyRunning, errs.UserMessage(err))
	assert.Equal(t, 1, m.StartAgentCount(), "second start must not reach the agent")
	assert.Equal(t, 1, tickers.count())
	assert.True(t, d.Polling())
}

func TestStopAgent(t *testing.T) {
	status := "running"
	var mu sync.Mutex
	m := &mock.MockClient{
		GetAgentStatusFn: func(ctx context.Context) (*types.AgentStatus, error) {
			mu.Lock()
			defer mu.Unlock()
			return &types.AgentStatus{Status: status}, nil
		},
		StopAgentFn: func(ctx context.Context) (*types.Ack, error) {
			mu.Lock()
			defer mu.Unlock()
			status = "stopping"
			return &types.Ack{Message: "Agent is stopping"}, nil
		},
	}
	d, _ := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.StartAgent(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(d.Snapshot().LastSuccess) == 2
	}, waitFor, tick)
	assert.True(t, d.Snapshot().Controls.StopEnabled)

	ack, err := d.StopAgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Agent is stopping", ack.Message)

	s := d.Snapshot()
	assert.False(t, s.Polling)
	assert.Equal(t, types.StateStopping, s.State().Kind)
	assert.Equal(t, types.ClassWaiting, s.StatusClass)
	assert.True(t, s.Controls.StartEnabled)
	assert.False(t, s.Controls.StopEnabled)
}

func TestStopAgentFailureKeepsPolling(t *testing.T) {
	m := &mock.MockClient{
		StopAgentFn: func(ctx context.Context) (*types.Ack, error) {
			return nil, errs.RemoteError(client.OpStopAgent, http.StatusBadRequest, "Agent is not running", fmt.Errorf("400"))
		},
	}
	d, tickers := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.StartAgent(context.Background())
	require.NoError(t, err)

	_, err = d.StopAgent(context.Background())
	require.Error(t, err)
	assert.True(t, d.Polling())

	waitForPairs(t, m, 2, 2)
	tickers.last().ch <- time.Now()
	waitForPairs(t, m, 3, 3)
}

func TestSubmitCredentialsRefreshes(t *testing.T) {
	m := &mock.MockClient{
		GetCredentialsStatusFn: func(ctx context.Context) (*types.CredentialState, error) {
			return &types.CredentialState{Set: false}, nil
		},
	}
	d, _ := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))
	waitForPairs(t, m, 1, 1)

	res, err := d.SubmitCredentials(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, credentials.MsgSaved, res.Message)

	assert.True(t, d.CredentialsSet())
	// one synchronous refresh
	assert.Equal(t, 2, m.ListJobsCount())
	assert.Equal(t, 2, m.GetAgentStatusCount())
	assert.False(t, d.Snapshot().Controls.CredentialWarning)
}

func TestSubmitCredentialsFailureLeavesState(t *testing.T) {
	m := &mock.MockClient{
		GetCredentialsStatusFn: func(ctx context.Context) (*types.CredentialState, error) {
			return &types.CredentialState{Set: false}, nil
		},
		SetCredentialsFn: func(ctx context.Context, creds types.Credentials) (*types.Ack, error) {
			return nil, errs.RemoteError(client.OpSetCredentials, http.StatusBadRequest, "bad password", fmt.Errorf("400"))
		},
	}
	d, _ := newTestComposer(m)
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	_, err := d.SubmitCredentials(context.Background(), "a@b.co", "pw")
	require.Error(t, err)
	assert.Equal(t, "bad password", errs.UserMessage(err))
	assert.False(t, d.CredentialsSet())
	assert.Equal(t, 1, m.ListJobsCount())
}

func TestRequestSort(t *testing.T) {
	d, _ := newTestComposer(&mock.MockClient{})
	defer d.Close()
	require.NoError(t, d.Mount(context.Background()))

	s := d.RequestSort(jobs.SortByTitle)
	assert.Equal(t, jobs.SortState{Key: jobs.SortByTitle, Direction: jobs.Asc}, s)
	assert.Equal(t, "Backend Engineer", d.Snapshot().Jobs[0].Title)

	s = d.RequestSort(jobs.SortByTitle)
	assert.Equal(t, jobs.Desc, s.Direction)
	assert.Equal(t, "Site Reliability Engineer", d.Snapshot().Jobs[0].Title)

	d.SetSort(jobs.SortState{Key: jobs.SortByCompany, Direction: jobs.Asc})
	assert.Equal(t, "Acme", d.Snapshot().Jobs[0].Company)
}

func TestSubscribe(t *testing.T) {
	d, _ := newTestComposer(&mock.MockClient{})
	ch, cancel := d.Subscribe()

	d.RequestSort(jobs.SortByCompany)

	select {
	case evt := <-ch:
		assert.Equal(t, events.TypeSort, evt.Type)
	case <-time.After(waitFor):
		t.Fatal("no event")
	}

	cancel()
	require.NoError(t, d.Close())
}

// Credentials missing, start rejected; after a successful submit start succeeds
// with one immediate pair and one pair per tick.
func TestEndToEnd(t *testing.T) {
	var mu sync.Mutex
	credsSet := false
	m := &mock.MockClient{
		GetCredentialsStatusFn: func(ctx context.Context) (*types.CredentialState, error) {
			mu.Lock()
			defer mu.Unlock()
			return &types.CredentialState{Set: credsSet}, nil
		},
		SetCredentialsFn: func(ctx context.Context, creds types.Credentials) (*types.Ack, error) {
			mu.Lock()
			defer mu.Unlock()
			credsSet = true
			return &types.Ack{Message: "LinkedIn credentials saved successfully"}, nil
		},
	}
	d, tickers := newTestComposer(m)
	defer d.Close()

	require.NoError(t, d.Mount(context.Background()))
	assert.False(t, d.CredentialsSet())

	_, err := d.StartAgent(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = d.SubmitCredentials(context.Background(), "a@b.co", "pw")
	require.NoError(t, err)
	assert.True(t, d.CredentialsSet())
	waitForPairs(t, m, 2, 2)

	_, err = d.StartAgent(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, tickers.count())
	assert.Equal(t, poller.DefaultInterval, tickers.interval)

	// immediate pair
	waitForPairs(t, m, 3, 3)

	for i := 1; i <= 3; i++ {
		tickers.last().ch <- time.Now()
		waitForPairs(t, m, 3+i, 3+i)
	}

	// a second start is refused locally and keeps the single ticker
	_, err = d.StartAgent(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, m.StartAgentCount())
	assert.Equal(t, 1, tickers.count())

	assert.True(t, d.Snapshot().Polling)
	require.Eventually(t, func() bool {
		s := d.Snapshot()
		_, okJobs := s.LastSuccess[poller.KindJobs]
		_, okStatus := s.LastSuccess[poller.KindStatus]
		return okJobs && okStatus
	}, waitFor, tick)
}
