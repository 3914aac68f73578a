package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bloodlink/internal/cooldown/metrics"
	"bloodlink/internal/cooldown/models"
	"bloodlink/internal/cooldown/ports"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/sentinel"
	"bloodlink/pkg/requestcontext"
)

// Gate decides whether a keyed action may fire again, given the last time it
// fired and a minimum gap. It holds no state of its own; the last fire time
// lives in the store so throttling survives restarts.
type Gate struct {
	store   ports.KVStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func New(store ports.KVStore, opts ...Option) (*Gate, error) {
	if store == nil {
		return nil, errors.New("cooldown store is required")
	}
	g := &Gate{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CanFire reports whether at least duration has passed since key last fired.
// A key that never fired, or whose record is unreadable, may fire.
func (g *Gate) CanFire(ctx context.Context, key string, duration time.Duration, now time.Time) (bool, error) {
	remaining, err := g.Remaining(ctx, key, duration, now)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

// RecordFire stores now as the last fire time for key.
func (g *Gate) RecordFire(ctx context.Context, key string, now time.Time) error {
	raw, err := models.NewState(now).Encode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode cooldown state")
	}
	if err := g.store.Set(ctx, key, raw); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to record cooldown")
	}
	return nil
}

// Remaining returns how long until key may fire again, never negative.
func (g *Gate) Remaining(ctx context.Context, key string, duration time.Duration, now time.Time) (time.Duration, error) {
	if duration <= 0 {
		return 0, dErrors.New(dErrors.CodeInvariantViolation, "cooldown duration must be positive")
	}
	last, err := g.lastFired(ctx, key)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}
	return max(0, duration-now.Sub(*last)), nil
}

// Check combines CanFire and Remaining into one typed decision.
func (g *Gate) Check(ctx context.Context, key string, duration time.Duration, now time.Time) (models.Decision, error) {
	remaining, err := g.Remaining(ctx, key, duration, now)
	if err != nil {
		return models.Decision{}, err
	}
	decision := models.NewDecision(remaining)
	if g.metrics != nil {
		g.metrics.ObserveDecision(decision.Allowed)
	}
	return decision, nil
}

// lastFired reads the stored fire time. Missing and unreadable records both
// yield nil; unreadable ones are removed. A record is unreadable when the
// store reports it corrupt or when its blob does not decode.
func (g *Gate) lastFired(ctx context.Context, key string) (*time.Time, error) {
	raw, err := g.store.Get(ctx, key)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, nil
	case errors.Is(err, sentinel.ErrCorrupt):
		g.discard(ctx, key, err)
		return nil, nil
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read cooldown")
	}

	state, err := models.DecodeState(raw)
	if err != nil {
		g.discard(ctx, key, err)
		return nil, nil
	}
	last := state.Time()
	return &last, nil
}

func (g *Gate) discard(ctx context.Context, key string, cause error) {
	g.logger.WarnContext(ctx, "discarding unreadable cooldown entry",
		"key", key,
		"error", cause,
		"request_id", requestcontext.RequestID(ctx),
	)
	if g.metrics != nil {
		g.metrics.IncrementCorrupt()
	}
	if err := g.store.Remove(ctx, key); err != nil {
		g.logger.WarnContext(ctx, "failed to remove unreadable cooldown entry", "key", key, "error", err)
	}
}
