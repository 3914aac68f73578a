package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bloodlink/internal/request/metrics"
	"bloodlink/internal/request/models"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/requestcontext"
)

// Store reads active requests, already normalized, newest first.
type Store interface {
	ListActiveRequests(ctx context.Context) ([]models.Request, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("request store is required")
	}
	svc := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("bloodlink/request"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Summaries rolls the active requests up by blood group. When the store
// cannot be read the result is empty and the error is returned with it.
func (s *Service) Summaries(ctx context.Context, order models.Order) (*models.GroupResult, error) {
	ctx, span := s.tracer.Start(ctx, "request.Summaries")
	defer span.End()

	requests, err := s.listActive(ctx)
	result := GroupByBloodGroup(requests, order)
	if result.SkippedCount > 0 {
		s.logger.WarnContext(ctx, "skipped requests with invalid blood group",
			"skipped", result.SkippedCount,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.AddSkipped(result.SkippedCount)
		}
	}
	span.SetAttributes(
		attribute.Int("request.groups", len(result.Summaries)),
		attribute.Int("request.skipped", result.SkippedCount),
	)
	return &result, err
}

// Search lists the active requests matching criteria. When the store cannot
// be read the list is empty and the error is returned with it.
func (s *Service) Search(ctx context.Context, criteria models.Criteria) ([]models.Request, error) {
	ctx, span := s.tracer.Start(ctx, "request.Search")
	defer span.End()

	requests, err := s.listActive(ctx)
	matched := Filter(requests, criteria)
	span.SetAttributes(attribute.Int("request.results", len(matched)))
	return matched, err
}

func (s *Service) listActive(ctx context.Context) ([]models.Request, error) {
	requests, err := s.store.ListActiveRequests(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list active requests",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "active requests are unavailable")
	}
	return requests, nil
}
