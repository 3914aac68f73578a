package poller

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRegistryClosed is returned by Start after Close.
var ErrRegistryClosed = errors.New("poller registry is closed")

// Registry keeps at most one active poller per subject. Pollers run on the
// registry's own context, so they outlive the request that started them and
// stop when the registry is closed. A finished poller stays readable through
// Get for the retention period, then the subject is forgotten.
type Registry struct {
	opts      []Option
	retention time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	pollers map[string]*Poller
	closed  bool
}

// NewRegistry validates opts once so Start cannot fail on configuration.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		opts:      opts,
		retention: cfg.retention,
		ctx:     ctx,
		cancel:  cancel,
		pollers: make(map[string]*Poller),
	}, nil
}

// Start returns the subject's active poller if one is polling; otherwise it
// starts a new one running check. started reports which happened.
func (r *Registry) Start(subject string, check CheckFunc, opts ...Option) (p *Poller, started bool, err error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, false, ErrRegistryClosed
	}
	if existing, ok := r.pollers[subject]; ok && !existing.State().IsTerminal() {
		r.mu.Unlock()
		return existing, false, nil
	}
	p, err = New(check, append(append([]Option(nil), r.opts...), opts...)...)
	if err != nil {
		r.mu.Unlock()
		return nil, false, err
	}
	r.pollers[subject] = p
	r.mu.Unlock()

	p.Start(r.ctx)
	go r.expire(subject, p)
	return p, true, nil
}

// expire forgets subject once p has been finished for the retention period,
// unless a newer poller has replaced it.
func (r *Registry) expire(subject string, p *Poller) {
	select {
	case <-p.Done():
	case <-r.ctx.Done():
		return
	}
	timer := time.NewTimer(r.retention)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.ctx.Done():
		return
	}
	r.mu.Lock()
	if r.pollers[subject] == p {
		delete(r.pollers, subject)
	}
	r.mu.Unlock()
}

// Len reports how many subjects the registry currently tracks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pollers)
}

// Get returns the subject's most recent poller, finished or not.
func (r *Registry) Get(subject string) (*Poller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pollers[subject]
	return p, ok
}

// Cancel stops the subject's poller, if any.
func (r *Registry) Cancel(subject string) {
	if p, ok := r.Get(subject); ok {
		p.Cancel()
	}
}

// Close cancels every poller and waits for them to stop or ctx to end.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	pollers := make([]*Poller, 0, len(r.pollers))
	for _, p := range r.pollers {
		pollers = append(pollers, p)
	}
	r.mu.Unlock()

	r.cancel()
	for _, p := range pollers {
		select {
		case <-p.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
