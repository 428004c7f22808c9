// Package poller refreshes the agent's jobs and status on a fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/logger"
	"github.com/jobdash/jobdash/internal/types"
)

// DefaultInterval is the time between two fetch pairs
const DefaultInterval = 5 * time.Second

// State is Idle or Polling
type State int

const (
	// Idle means no ticker exists
	Idle State = iota
	// Polling means exactly one ticker is live
	Polling
)

func (s State) String() string {
	if s == Polling {
		return "polling"
	}
	return "idle"
}

// Kind identifies one half of a fetch pair
type Kind string

const (
	KindJobs   Kind = "jobs"
	KindStatus Kind = "status"
)

// Fetcher is the part of the agent client the poller needs
type Fetcher interface {
	ListJobs(ctx context.Context) ([]types.Job, error)
	GetAgentStatus(ctx context.Context) (*types.AgentStatus, error)
}

// Handlers receive fetch results. Nil handlers are skipped.
type Handlers struct {
	Jobs   func(jobs []types.Job)
	Status func(status types.AgentStatus)
	// Failed is told about a failed fetch after it has been logged
	Failed func(kind Kind, err error)
}

// Ticker is the subset of *time.Ticker the poller uses
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every d
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop() { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Options configures a Poller
type Options struct {
	Interval  time.Duration
	NewTicker TickerFunc
	// Now is used for LastSuccess timestamps
	Now func() time.Time
}

// Poller owns the refresh ticker. It creates the ticker on Start and releases it on Stop or Close;
// nothing else touches it.
type Poller struct {
	fetcher   Fetcher
	handlers  Handlers
	interval  time.Duration
	newTicker TickerFunc
	now       func() time.Time

	mu     sync.Mutex
	state  State
	gen    uint64
	ticker Ticker
	done   chan struct{}

	lastSuccess map[Kind]time.Time
}

// New creates an idle Poller
func New(fetcher Fetcher, handlers Handlers, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Poller{
		fetcher:     fetcher,
		handlers:    handlers,
		interval:    opts.Interval,
		newTicker:   opts.NewTicker,
		now:         opts.Now,
		lastSuccess: make(map[Kind]time.Time),
	}
}

// Start begins polling: one fetch pair right away, then one per tick.
// It is rejected when credentials are not set and is a no-op while already polling.
// Fetches outlive ctx's cancellation; only Stop ends the loop.
func (p *Poller) Start(ctx context.Context, credentialsSet bool) error {
	if !credentialsSet {
		return errs.ValidationError("LinkedIn credentials must be set before polling")
	}

	p.mu.Lock()
	if p.state == Polling {
		p.mu.Unlock()
		return nil
	}
	p.state = Polling
	p.gen++
	gen := p.gen
	ticker := p.newTicker(p.interval)
	p.ticker = ticker
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	logger.Debugf("poller started (interval %s)", p.interval)
	go p.loop(context.WithoutCancel(ctx), gen, ticker, done)
	return nil
}

// Stop stops the ticker. No fetch starts after Stop returns; fetches already in flight
// finish and their results are still applied. Stop while idle does nothing.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	p.state = Idle
	p.gen++
	p.ticker.Stop()
	p.ticker = nil
	close(p.done)
	p.done = nil
	logger.Debug("poller stopped")
}

// Close releases the ticker on teardown
func (p *Poller) Close() error {
	p.Stop()
	return nil
}

// State returns the current state
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastSuccess returns when a fetch of kind last succeeded and was applied, zero if never
func (p *Poller) LastSuccess(kind Kind) time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSuccess[kind]
}

// FetchOnce runs one fetch pair synchronously, outside the ticker
func (p *Poller) FetchOnce(ctx context.Context) {
	p.fetchPair(ctx, nil)
}

func (p *Poller) loop(ctx context.Context, gen uint64, ticker Ticker, done <-chan struct{}) {
	live := func() bool { return p.beginCycle(gen) }

	p.fetchPair(ctx, live)
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			if !live() {
				return
			}
			p.fetchPair(ctx, live)
		}
	}
}

// beginCycle reports whether the loop of gen may still issue fetches
func (p *Poller) beginCycle(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Polling && p.gen == gen
}

// fetchPair issues the jobs and status fetches concurrently. They fail independently.
// Each fetch asks live right before it is sent, so a Stop that lands between the tick
// and the request cancels it. A nil live always fetches.
func (p *Poller) fetchPair(ctx context.Context, live func() bool) {
	var g errgroup.Group

	g.Go(func() error {
		if live != nil && !live() {
			return nil
		}
		jobs, err := p.fetcher.ListJobs(ctx)
		if err != nil {
			p.fail(KindJobs, err)
			return nil
		}
		if p.handlers.Jobs != nil {
			p.handlers.Jobs(jobs)
		}
		p.succeed(KindJobs)
		return nil
	})

	g.Go(func() error {
		if live != nil && !live() {
			return nil
		}
		status, err := p.fetcher.GetAgentStatus(ctx)
		if err != nil {
			p.fail(KindStatus, err)
			return nil
		}
		if p.handlers.Status != nil && status != nil {
			p.handlers.Status(*status)
		}
		p.succeed(KindStatus)
		return nil
	})

	_ = g.Wait()
}

func (p *Poller) succeed(kind Kind) {
	p.mu.Lock()
	p.lastSuccess[kind] = p.now()
	p.mu.Unlock()
}

func (p *Poller) fail(kind Kind, err error) {
	logger.WarnWithFields("poll fetch failed", map[string]interface{}{
		"kind":  string(kind),
		"error": err.Error(),
	})
	if p.handlers.Failed != nil {
		p.handlers.Failed(kind, err)
	}
}
