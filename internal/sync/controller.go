package sync

import (
	"context"
	gosync "sync"
	"sync/atomic"
	"time"

	"github.com/chirag7gaming/my-code/internal/data"
)

// State represents the sync state machine: Idle → Syncing → Idle.
type State int

const (
	Idle State = iota
	Syncing
)

// Result is delivered after each completed sync cycle.
type Result struct {
	// Err is the load failure, if any. A corrupt-store reset surfaces
	// here as a wrapped data.ErrCorruptStore.
	Err error

	// Finished is when the cycle returned to Idle.
	Finished time.Time
}

// defaultInterval is how often a periodic cycle runs.
const defaultInterval = 10 * time.Minute

// defaultMinVisible is the minimum time a cycle stays in Syncing so
// the caller's progress feedback is actually visible.
const defaultMinVisible = 2 * time.Second

// Controller periodically reloads the data service's state from the
// preference store. A cycle is a reload, not a merge: any in-memory
// edits not yet saved are discarded, and the reloaded state wins. An
// atomic single-flight guard makes a trigger during a running cycle a
// no-op, so two cycles can never interleave loads.
type Controller struct {
	svc        *data.Service
	interval   time.Duration
	minVisible time.Duration

	syncing  atomic.Bool
	resultCh chan Result
	stopCh   chan struct{}

	mu       gosync.Mutex
	running  bool
	lastSync time.Time
}

// Option customizes a Controller.
type Option func(*Controller)

// WithInterval overrides the periodic cycle interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithMinVisible overrides the minimum visible cycle duration.
func WithMinVisible(d time.Duration) Option {
	return func(c *Controller) { c.minVisible = d }
}

// New creates a Controller over the given data service.
func New(svc *data.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:        svc,
		interval:   defaultInterval,
		minVisible: defaultMinVisible,
		resultCh:   make(chan Result, 16),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the periodic cycle goroutine. Starting an already
// running controller is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	go c.loop()
}

// Stop halts the periodic goroutine. In-flight cycles run to
// completion; there is no cancellation of a started cycle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	close(c.stopCh)
	c.running = false
}

// Trigger starts a manual sync cycle unless one is already in flight,
// in which case it reports false and does nothing. The cycle runs in
// the background; completion arrives on Results.
func (c *Controller) Trigger(ctx context.Context) bool {
	if !c.syncing.CompareAndSwap(false, true) {
		return false
	}
	go c.runCycle(ctx)
	return true
}

// State reports Idle or Syncing.
func (c *Controller) State() State {
	if c.syncing.Load() {
		return Syncing
	}
	return Idle
}

// LastSync returns when the most recent successful cycle finished.
func (c *Controller) LastSync() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSync
}

// Results delivers one Result per completed cycle. Results are dropped
// rather than queued when the channel is full.
func (c *Controller) Results() <-chan Result {
	return c.resultCh
}

// loop runs periodic cycles until Stop.
func (c *Controller) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			if !c.syncing.CompareAndSwap(false, true) {
				// A manual cycle is in flight; skip this tick.
				continue
			}
			c.runCycle(context.Background())
		}
	}
}

// runCycle performs a single cycle: reload from the store, hold the
// Syncing state for the minimum visible duration, return to Idle, then
// report. The caller must have won the single-flight guard; runCycle
// releases it before the completion result is sent.
func (c *Controller) runCycle(ctx context.Context) {
	started := time.Now()
	err := c.svc.Load(ctx)

	if remaining := c.minVisible - time.Since(started); remaining > 0 {
		time.Sleep(remaining)
	}

	finished := time.Now()
	if err == nil {
		c.mu.Lock()
		c.lastSync = finished
		c.mu.Unlock()
	}

	c.syncing.Store(false)
	c.sendResult(Result{Err: err, Finished: finished})
}

// sendResult delivers a Result without blocking the cycle.
func (c *Controller) sendResult(r Result) {
	select {
	case c.resultCh <- r:
	default:
	}
}
