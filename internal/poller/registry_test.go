package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
	sched    *FakeScheduler
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.sched = NewFakeScheduler()
	r, err := NewRegistry(WithScheduler(s.sched))
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistrySuite) TearDownTest() {
	s.NoError(s.registry.Close(context.Background()))
}

func (s *RegistrySuite) TestNewRegistryRejectsInvalidOptions() {
	_, err := NewRegistry(WithMaxAttempts(-1))
	s.Error(err)
}

func (s *RegistrySuite) TestStartIsIdempotentPerSubject() {
	var calls atomic.Int32
	first, started, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)
	s.True(started)

	second, started, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)
	s.False(started)
	s.Same(first, second)
	s.Len(s.sched.Tickers(), 1)
}

func (s *RegistrySuite) TestSubjectsAreIndependent() {
	var calls atomic.Int32
	a, _, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)
	b, _, err := s.registry.Start("uid-2", countingCheck(&calls, 0))
	s.Require().NoError(err)

	s.NotSame(a, b)
	s.Equal(2, s.sched.Tick(tickAt))
}

func (s *RegistrySuite) TestRestartAfterFinish() {
	var calls atomic.Int32
	first, _, err := s.registry.Start("uid-1", countingCheck(&calls, 1))
	s.Require().NoError(err)
	s.sched.Tick(tickAt)
	waitDone(s.T(), first)

	second, started, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)
	s.True(started)
	s.NotSame(first, second)

	got, ok := s.registry.Get("uid-1")
	s.True(ok)
	s.Same(second, got)
}

func (s *RegistrySuite) TestCancelSubject() {
	var calls atomic.Int32
	p, _, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)

	s.registry.Cancel("uid-1")
	waitDone(s.T(), p)
	s.Equal(StateCancelled, p.State())

	s.registry.Cancel("unknown")
}

func (s *RegistrySuite) TestCloseStopsPollersAndRejectsStart() {
	var calls atomic.Int32
	p, _, err := s.registry.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)

	s.Require().NoError(s.registry.Close(context.Background()))
	s.Equal(StateCancelled, p.State())

	_, _, err = s.registry.Start("uid-2", countingCheck(&calls, 0))
	s.ErrorIs(err, ErrRegistryClosed)
}

func (s *RegistrySuite) TestFinishedPollerIsForgottenAfterRetention() {
	r, err := NewRegistry(WithScheduler(s.sched), WithRetention(20*time.Millisecond))
	s.Require().NoError(err)
	defer r.Close(context.Background())

	var calls atomic.Int32
	p, _, err := r.Start("uid-1", countingCheck(&calls, 1))
	s.Require().NoError(err)
	s.sched.Tick(tickAt)
	waitDone(s.T(), p)

	got, ok := r.Get("uid-1")
	s.True(ok, "finished poller stays readable within retention")
	s.Same(p, got)

	s.Eventually(func() bool {
		_, ok := r.Get("uid-1")
		return !ok
	}, 2*time.Second, 5*time.Millisecond)
	s.Zero(r.Len())
}

func (s *RegistrySuite) TestRetentionKeepsReplacementPoller() {
	r, err := NewRegistry(WithScheduler(s.sched), WithRetention(20*time.Millisecond))
	s.Require().NoError(err)
	defer r.Close(context.Background())

	var calls atomic.Int32
	first, _, err := r.Start("uid-1", countingCheck(&calls, 1))
	s.Require().NoError(err)
	s.sched.Tick(tickAt)
	waitDone(s.T(), first)

	second, started, err := r.Start("uid-1", countingCheck(&calls, 0))
	s.Require().NoError(err)
	s.True(started)

	time.Sleep(60 * time.Millisecond)
	got, ok := r.Get("uid-1")
	s.True(ok)
	s.Same(second, got)
}

func (s *RegistrySuite) TestNewRegistryRejectsNonPositiveRetention() {
	_, err := NewRegistry(WithRetention(0))
	s.Error(err)
}
