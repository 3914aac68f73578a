//go:build integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bloodlink/internal/cooldown/service"
	"bloodlink/pkg/platform/sentinel"
	"bloodlink/pkg/testutil/containers"
)

type RedisKVStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisKVStore
}

func TestRedisKVStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisKVStoreSuite))
}

func (s *RedisKVStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = New(s.redis.Client)
}

func (s *RedisKVStoreSuite) TearDownSuite() {
	_ = s.redis.Terminate(context.Background())
}

func (s *RedisKVStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisKVStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, "k")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	s.Require().NoError(s.store.Set(ctx, "k", []byte(`{"lastSent":1}`)))
	got, err := s.store.Get(ctx, "k")
	s.Require().NoError(err)
	s.Equal(`{"lastSent":1}`, string(got))

	s.Require().NoError(s.store.Remove(ctx, "k"))
	_, err = s.store.Get(ctx, "k")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisKVStoreSuite) TestGateSurvivesNewStoreInstance() {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	first, err := service.New(s.store)
	s.Require().NoError(err)
	s.Require().NoError(first.RecordFire(ctx, "emailResend_uid-1", now))

	// A new gate over a fresh client stands in for a restarted process.
	second, err := service.New(New(s.redis.Client))
	s.Require().NoError(err)
	decision, err := second.Check(ctx, "emailResend_uid-1", time.Minute, now.Add(20*time.Second))
	s.Require().NoError(err)
	s.False(decision.Allowed)
	s.Equal(40, decision.RetryAfterSeconds)
}

func (s *RedisKVStoreSuite) TestCorruptEntryFailsOpen() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "emailResend_uid-2", []byte("garbage")))

	gate, err := service.New(s.store)
	s.Require().NoError(err)
	ok, err := gate.CanFire(ctx, "emailResend_uid-2", time.Minute, time.Now())
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.store.Get(ctx, "emailResend_uid-2")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
