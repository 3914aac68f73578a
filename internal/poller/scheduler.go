package poller

import (
	"sync"
	"time"
)

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler creates tickers. Production code uses RealScheduler; tests use
// FakeScheduler to deliver ticks by hand.
type Scheduler interface {
	NewTicker(d time.Duration) Ticker
}

type RealScheduler struct{}

func (RealScheduler) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// FakeScheduler hands out tickers that only fire when Tick is called.
type FakeScheduler struct {
	mu      sync.Mutex
	tickers []*FakeTicker
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (f *FakeScheduler) NewTicker(d time.Duration) Ticker {
	t := &FakeTicker{
		Interval: d,
		c:        make(chan time.Time),
		stopped:  make(chan struct{}),
	}
	f.mu.Lock()
	f.tickers = append(f.tickers, t)
	f.mu.Unlock()
	return t
}

// Tick delivers one tick to every live ticker, blocking until each has been
// received or stopped. It returns how many tickers received it.
func (f *FakeScheduler) Tick(now time.Time) int {
	f.mu.Lock()
	tickers := append([]*FakeTicker(nil), f.tickers...)
	f.mu.Unlock()

	delivered := 0
	for _, t := range tickers {
		if t.fire(now) {
			delivered++
		}
	}
	return delivered
}

// Tickers returns every ticker created so far, stopped or not.
func (f *FakeScheduler) Tickers() []*FakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeTicker(nil), f.tickers...)
}

// FakeTicker is a Ticker driven by FakeScheduler.Tick.
type FakeTicker struct {
	Interval time.Duration
	c        chan time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

func (t *FakeTicker) C() <-chan time.Time { return t.c }

func (t *FakeTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

func (t *FakeTicker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

func (t *FakeTicker) fire(now time.Time) bool {
	if t.Stopped() {
		return false
	}
	select {
	case t.c <- now:
		return true
	case <-t.stopped:
		return false
	}
}
