// Package poller runs a check on a fixed interval until it succeeds, fails,
// runs out of attempts or is cancelled.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"bloodlink/internal/poller/metrics"
)

const (
	DefaultInterval    = 8 * time.Second
	DefaultMaxAttempts = 15
	// DefaultRetention is how long a Registry keeps a finished poller
	// readable before forgetting the subject.
	DefaultRetention = 10 * time.Minute
)

type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	StateTimedOut  State = "timed_out"
	StateCancelled State = "cancelled"
)

// IsTerminal reports whether no further transitions can happen.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateTimedOut || s == StateCancelled
}

// Reason explains why a poller timed out or stopped.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonAttemptsExhausted Reason = "attempts_exhausted"
	ReasonCheckFailed       Reason = "check_failed"
	ReasonCancelled         Reason = "cancelled"
)

// CheckFunc reports whether the awaited condition holds. An error ends
// polling.
type CheckFunc func(ctx context.Context) (bool, error)

// Result is a snapshot of a poller. Err is set only for ReasonCheckFailed.
type Result struct {
	State    State  `json:"state"`
	Attempts int    `json:"attempts"`
	Reason   Reason `json:"reason,omitempty"`
	Err      error  `json:"-"`
}

// Transition is published to OnTransition subscribers on every state change.
type Transition struct {
	From     State
	To       State
	Attempts int
}

type config struct {
	interval     time.Duration
	maxAttempts  int
	scheduler    Scheduler
	logger       *slog.Logger
	metrics      *metrics.Metrics
	onTransition []func(Transition)
	retention    time.Duration
}

type Option func(*config)

func WithInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

func WithMaxAttempts(n int) Option {
	return func(c *config) { c.maxAttempts = n }
}

func WithScheduler(s Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithRetention sets how long a Registry keeps a finished poller. Pollers
// created directly with New ignore it.
func WithRetention(d time.Duration) Option {
	return func(c *config) { c.retention = d }
}

// OnTransition subscribes fn to state changes. fn runs on the poller
// goroutine (or the caller's, for the Idle to Polling step) and must not block.
func OnTransition(fn func(Transition)) Option {
	return func(c *config) { c.onTransition = append(c.onTransition, fn) }
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
		scheduler:   RealScheduler{},
		logger:      slog.Default(),
		retention:   DefaultRetention,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.interval <= 0 {
		return config{}, errors.New("poll interval must be positive")
	}
	if cfg.maxAttempts <= 0 {
		return config{}, errors.New("max attempts must be positive")
	}
	if cfg.retention <= 0 {
		return config{}, errors.New("retention must be positive")
	}
	if cfg.scheduler == nil {
		return config{}, errors.New("scheduler is required")
	}
	return cfg, nil
}

// Poller runs check once per tick, one check at a time, on its own
// goroutine. Ticks that arrive while a check runs are not queued.
type Poller struct {
	cfg   config
	check CheckFunc

	mu       sync.Mutex
	result   Result
	stopping bool
	cancel context.CancelFunc
	done   chan struct{}
}

func New(check CheckFunc, opts ...Option) (*Poller, error) {
	if check == nil {
		return nil, errors.New("check function is required")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Poller{
		cfg:    cfg,
		check:  check,
		result: Result{State: StateIdle},
		done:   make(chan struct{}),
	}, nil
}

// Start begins polling. Calls after the first are no-ops. Polling stops when
// ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.result.State != StateIdle {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.result = Result{State: StatePolling}
	ticker := p.cfg.scheduler.NewTicker(p.cfg.interval)
	p.mu.Unlock()

	p.notify(Transition{From: StateIdle, To: StatePolling})
	go p.run(ctx, ticker)
}

// Cancel stops polling. The poller ends Cancelled unless it already finished.
// Cancelling a poller that never started moves it straight to Cancelled.
func (p *Poller) Cancel() {
	p.mu.Lock()
	if p.cancel != nil {
		p.stopping = true
		cancel := p.cancel
		p.mu.Unlock()
		cancel()
		return
	}
	if p.result.State != StateIdle {
		p.mu.Unlock()
		return
	}
	p.result = Result{State: StateCancelled, Reason: ReasonCancelled}
	close(p.done)
	p.mu.Unlock()

	p.notify(Transition{From: StateIdle, To: StateCancelled})
}

// Done is closed once the poller reaches a terminal state and its ticker has
// been stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) Result() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

func (p *Poller) State() State {
	return p.Result().State
}

func (p *Poller) run(ctx context.Context, ticker Ticker) {
	defer close(p.done)
	defer ticker.Stop()
	defer p.cancel()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			p.finish(ctx, StateCancelled, attempts, ReasonCancelled, nil)
			return
		case <-ticker.C():
		}

		// The tick may have won a race with Cancel.
		if !p.beginAttempt(ctx, attempts+1) {
			p.finish(ctx, StateCancelled, attempts, ReasonCancelled, nil)
			return
		}
		attempts++

		ok, err := p.check(ctx)
		switch {
		case ctx.Err() != nil:
			p.finish(ctx, StateCancelled, attempts, ReasonCancelled, nil)
			return
		case err != nil:
			p.cfg.logger.WarnContext(ctx, "poll check failed", "attempt", attempts, "error", err)
			p.finish(ctx, StateTimedOut, attempts, ReasonCheckFailed, err)
			return
		case ok:
			p.finish(ctx, StateSucceeded, attempts, ReasonNone, nil)
			return
		case attempts >= p.cfg.maxAttempts:
			p.finish(ctx, StateTimedOut, attempts, ReasonAttemptsExhausted, nil)
			return
		}
	}
}

// beginAttempt records attempt n unless the poller is being stopped. Cancel
// sets stopping under the same lock, so no check starts after it returns.
func (p *Poller) beginAttempt(ctx context.Context, n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopping || ctx.Err() != nil {
		return false
	}
	p.result.Attempts = n
	return true
}

func (p *Poller) finish(ctx context.Context, state State, attempts int, reason Reason, err error) {
	p.transition(state, attempts, reason, err)
	p.cfg.logger.DebugContext(ctx, "poller finished",
		"state", state,
		"reason", reason,
		"attempts", attempts,
	)
	if p.cfg.metrics != nil {
		p.cfg.metrics.ObserveOutcome(string(state), string(reason), attempts)
	}
}

// transition moves to a terminal state unless one was already reached, then
// notifies subscribers outside the lock.
func (p *Poller) transition(to State, attempts int, reason Reason, err error) {
	p.mu.Lock()
	from := p.result.State
	if from.IsTerminal() {
		p.mu.Unlock()
		return
	}
	p.result = Result{State: to, Attempts: attempts, Reason: reason, Err: err}
	p.mu.Unlock()

	p.notify(Transition{From: from, To: to, Attempts: attempts})
}

func (p *Poller) notify(t Transition) {
	for _, fn := range p.cfg.onTransition {
		fn(t)
	}
}
