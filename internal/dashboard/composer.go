// Package dashboard holds the dashboard state and wires the poller, the sort engine
// and the credential flow together.
package dashboard

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobdash/jobdash/internal/api/v1/client"
	"github.com/jobdash/jobdash/internal/credentials"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/events"
	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/logger"
	"github.com/jobdash/jobdash/internal/poller"
	"github.com/jobdash/jobdash/internal/types"
)

// MsgCredentialsRequired is returned when the agent is started without stored credentials
const MsgCredentialsRequired = "Please set LinkedIn credentials before starting the agent."

// MsgAlreadyRunning is returned when the agent is started while the dashboard is already polling
const MsgAlreadyRunning = "Agent is already running"

// Options configures a Composer
type Options struct {
	PollInterval time.Duration
	// NewTicker replaces the poll ticker; tests use it to drive ticks
	NewTicker poller.TickerFunc
	Now       func() time.Time
}

// Composer is the dashboard's single state holder
type Composer struct {
	client client.Client
	flow   *credentials.Flow
	poller *poller.Poller
	hub    *events.Hub

	// ctlMu serializes StartAgent and StopAgent
	ctlMu sync.Mutex

	mu          sync.RWMutex
	jobList     []types.Job
	jobsLoading bool
	status      types.AgentStatus
	creds       types.CredentialState
	sort        jobs.SortState
}

// New creates a Composer with every entity at its default
func New(c client.Client, opts Options) *Composer {
	d := &Composer{
		client:      c,
		flow:        credentials.NewFlow(c),
		hub:         events.NewHub(),
		jobList:     []types.Job{},
		jobsLoading: true,
		status:      types.DefaultAgentStatus(),
		sort:        jobs.DefaultSortState(),
	}
	d.poller = poller.New(c, poller.Handlers{
		Jobs:   d.applyJobs,
		Status: d.applyStatus,
		Failed: d.fetchFailed,
	}, poller.Options{
		Interval:  opts.PollInterval,
		NewTicker: opts.NewTicker,
		Now:       opts.Now,
	})
	return d
}

// Mount loads jobs, agent status and credential status once.
// Failures are logged and returned joined; the dashboard keeps its defaults for the failed parts.
func (d *Composer) Mount(ctx context.Context) error {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		errList []error
	)
	record := func(err error) {
		mu.Lock()
		errList = append(errList, err)
		mu.Unlock()
	}

	g.Go(func() error {
		list, err := d.client.ListJobs(ctx)
		if err != nil {
			logger.Warnf("loading jobs: %v", err)
			d.fetchFailed(poller.KindJobs, err)
			record(err)
			return nil
		}
		d.applyJobs(list)
		return nil
	})
	g.Go(func() error {
		status, err := d.client.GetAgentStatus(ctx)
		if err != nil {
			logger.Warnf("loading agent status: %v", err)
			record(err)
			return nil
		}
		d.applyStatus(*status)
		return nil
	})
	g.Go(func() error {
		state, err := d.client.GetCredentialsStatus(ctx)
		if err != nil {
			logger.Warnf("checking LinkedIn credentials: %v", err)
			d.setCredentials(false)
			record(err)
			return nil
		}
		d.setCredentials(state.Set)
		return nil
	})

	_ = g.Wait()
	return stderrors.Join(errList...)
}

// StartAgent asks the agent to start and begins polling.
// It is rejected locally when no credentials are stored or polling is already running.
func (d *Composer) StartAgent(ctx context.Context) (*types.Ack, error) {
	d.ctlMu.Lock()
	defer d.ctlMu.Unlock()

	if !d.CredentialsSet() {
		return nil, errs.ValidationError(MsgCredentialsRequired)
	}
	if d.Polling() {
		return nil, errs.ValidationError(MsgAlreadyRunning)
	}

	ack, err := d.client.StartAgent(ctx)
	if err != nil {
		logger.Errorf("Error starting agent: %v", err)
		return nil, err
	}

	// the poller's first pair refreshes the status
	if err := d.poller.Start(ctx, d.CredentialsSet()); err != nil {
		return nil, err
	}
	d.hub.Publish(events.New(events.TypePolling, map[string]bool{"polling": true}))
	return ack, nil
}

// StopAgent asks the agent to stop, refreshes the status and stops polling.
// When the request fails polling continues.
func (d *Composer) StopAgent(ctx context.Context) (*types.Ack, error) {
	d.ctlMu.Lock()
	defer d.ctlMu.Unlock()

	ack, err := d.client.StopAgent(ctx)
	if err != nil {
		logger.Errorf("Error stopping agent: %v", err)
		return nil, err
	}

	if status, err := d.client.GetAgentStatus(ctx); err != nil {
		logger.Warnf("refreshing agent status: %v", err)
	} else {
		d.applyStatus(*status)
	}

	d.poller.Stop()
	d.hub.Publish(events.New(events.TypePolling, map[string]bool{"polling": false}))
	return ack, nil
}

// SubmitCredentials runs the credential flow. On success credentials are marked set
// and jobs and status are refreshed once.
func (d *Composer) SubmitCredentials(ctx context.Context, email, password string) (*credentials.Result, error) {
	res, err := d.flow.Submit(ctx, email, password)
	if err != nil {
		return nil, err
	}

	d.setCredentials(true)
	d.poller.FetchOnce(ctx)
	return res, nil
}

// RequestSort applies a column-header click and returns the new sort state
func (d *Composer) RequestSort(key jobs.SortKey) jobs.SortState {
	d.mu.Lock()
	d.sort = d.sort.Request(key)
	s := d.sort
	d.mu.Unlock()

	d.hub.Publish(events.New(events.TypeSort, s))
	return s
}

// SetSort replaces the sort state outright
func (d *Composer) SetSort(s jobs.SortState) {
	d.mu.Lock()
	d.sort = s
	d.mu.Unlock()

	d.hub.Publish(events.New(events.TypeSort, s))
}

// CredentialsSet reports whether the agent has credentials stored
func (d *Composer) CredentialsSet() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.creds.Set
}

// Polling reports whether the poller is running
func (d *Composer) Polling() bool {
	return d.poller.State() == poller.Polling
}

// Subscribe returns a channel of change events and a function that ends the subscription
func (d *Composer) Subscribe() (<-chan events.Event, func()) {
	ch := d.hub.Subscribe()
	return ch, func() { d.hub.Unsubscribe(ch) }
}

// Close stops polling and ends every subscription
func (d *Composer) Close() error {
	err := d.poller.Close()
	d.hub.Close()
	return err
}

func (d *Composer) applyJobs(list []types.Job) {
	d.mu.Lock()
	d.jobList = list
	d.jobsLoading = false
	d.mu.Unlock()

	d.hub.Publish(events.New(events.TypeJobs, map[string]int{"count": len(list)}))
}

func (d *Composer) applyStatus(status types.AgentStatus) {
	d.mu.Lock()
	d.status = status
	d.mu.Unlock()

	d.hub.Publish(events.New(events.TypeStatus, status))
}

// fetchFailed only ends the initial loading state; failed fetches never change data
func (d *Composer) fetchFailed(kind poller.Kind, _ error) {
	if kind != poller.KindJobs {
		return
	}
	d.mu.Lock()
	changed := d.jobsLoading
	d.jobsLoading = false
	d.mu.Unlock()

	if changed {
		d.hub.Publish(events.New(events.TypeJobs, nil))
	}
}

func (d *Composer) setCredentials(set bool) {
	d.mu.Lock()
	d.creds.Set = set
	d.mu.Unlock()

	d.hub.Publish(events.New(events.TypeCredentials, types.CredentialState{Set: set}))
}
