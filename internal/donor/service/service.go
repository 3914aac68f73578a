package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"bloodlink/internal/donor/metrics"
	"bloodlink/internal/donor/models"
	"bloodlink/pkg/platform/sentinel"
	"bloodlink/pkg/requestcontext"
)

// Store reads donors from the persisted sources, already normalized.
type Store interface {
	ListQuickDonors(ctx context.Context) ([]models.Donor, error)
	ListRegisteredDonors(ctx context.Context) ([]models.Donor, error)
}

// UserStore loads a single account profile.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.RegisteredUser, error)
}

const defaultFetchTimeout = 5 * time.Second

type Service struct {
	store        Store
	users        UserStore
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	fetchTimeout time.Duration
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

// WithUserStore enables profile lookup for the current user.
func WithUserStore(users UserStore) Option {
	return func(s *Service) {
		s.users = users
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("donor store is required")
	}

	svc := &Service{
		store:        store,
		logger:       slog.Default(),
		tracer:       otel.Tracer("bloodlink/donor"),
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Search reads every donor source concurrently and aggregates them. A source
// that fails contributes nothing and is reported in FailedSources; the
// search itself does not fail.
func (s *Service) Search(ctx context.Context, criteria models.Criteria, current *models.CurrentUser) *models.SearchResult {
	ctx, span := s.tracer.Start(ctx, "donor.Search")
	defer span.End()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var (
		quick, registered       []models.Donor
		quickErr, registeredErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		quick, quickErr = s.store.ListQuickDonors(fetchCtx)
		return nil
	})
	g.Go(func() error {
		registered, registeredErr = s.store.ListRegisteredDonors(fetchCtx)
		return nil
	})
	_ = g.Wait()

	var failed []models.SourceKind
	for _, src := range []struct {
		kind models.SourceKind
		err  error
	}{{models.SourceQuick, quickErr}, {models.SourceRegistered, registeredErr}} {
		if src.err == nil {
			continue
		}
		failed = append(failed, src.kind)
		s.logger.WarnContext(ctx, "donor source unavailable",
			"source", string(src.kind),
			"error", src.err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementSourceFailure(string(src.kind))
		}
	}
	if quickErr != nil {
		quick = nil
	}
	if registeredErr != nil {
		registered = nil
	}

	result := Aggregate([][]models.Donor{quick, registered}, criteria, current, requestcontext.Now(ctx))
	if result.SkippedCount > 0 {
		s.logger.WarnContext(ctx, "skipped donor records with invalid blood group",
			"skipped", result.SkippedCount,
		)
		if s.metrics != nil {
			s.metrics.AddSkipped(result.SkippedCount)
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveSearchResults(len(result.Donors))
	}
	span.SetAttributes(
		attribute.Int("donor.results", len(result.Donors)),
		attribute.Int("donor.skipped", result.SkippedCount),
		attribute.Int("donor.failed_sources", len(failed)),
	)

	return &models.SearchResult{Result: result, FailedSources: failed}
}

// ResolveCurrentUser overlays the stored profile onto the token identity when a
// user store is configured. A missing or unreadable profile leaves base as is.
func (s *Service) ResolveCurrentUser(ctx context.Context, base models.CurrentUser) models.CurrentUser {
	if s.users == nil || base.ID == "" {
		return base
	}
	profile, err := s.users.GetUser(ctx, base.ID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load current user profile",
				"user_id", base.ID,
				"error", err,
			)
		}
		return base
	}
	if profile == nil {
		return base
	}
	return models.CurrentUserFromProfile(base, *profile)
}
