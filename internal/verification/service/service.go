package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"bloodlink/internal/audit"
	cooldownmodels "bloodlink/internal/cooldown/models"
	"bloodlink/internal/poller"
	"bloodlink/internal/verification/models"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/requestcontext"
)

// Sender delivers a verification email and reports which path it used.
type Sender interface {
	SendVerification(ctx context.Context, uid string) (models.Channel, error)
}

// IdentityProvider reports the verification state of an account.
type IdentityProvider interface {
	EmailVerified(ctx context.Context, uid string) (bool, error)
}

// Gate is the cooldown gate guarding resends.
type Gate interface {
	Check(ctx context.Context, key string, duration time.Duration, now time.Time) (cooldownmodels.Decision, error)
	Remaining(ctx context.Context, key string, duration time.Duration, now time.Time) (time.Duration, error)
	RecordFire(ctx context.Context, key string, now time.Time) error
}

// Auditor records security events.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event)
}

type Service struct {
	gate        Gate
	sender      Sender
	identity    IdentityProvider
	registry    *poller.Registry
	auditor     Auditor
	logger      *slog.Logger
	cooldown    time.Duration
	maxAttempts int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithCooldown(d time.Duration) Option {
	return func(s *Service) {
		s.cooldown = d
	}
}

// WithRegistry sets the poller registry. maxAttempts must match the
// registry's configuration; it is reported back to clients.
func WithRegistry(r *poller.Registry, maxAttempts int) Option {
	return func(s *Service) {
		s.registry = r
		s.maxAttempts = maxAttempts
	}
}

func New(gate Gate, sender Sender, identity IdentityProvider, opts ...Option) (*Service, error) {
	if gate == nil {
		return nil, errors.New("cooldown gate is required")
	}
	if sender == nil {
		return nil, errors.New("verification sender is required")
	}
	if identity == nil {
		return nil, errors.New("identity provider is required")
	}
	s := &Service{
		gate:        gate,
		sender:      sender,
		identity:    identity,
		logger:      slog.Default(),
		cooldown:    cooldownmodels.DefaultResendCooldown,
		maxAttempts: poller.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cooldown <= 0 {
		return nil, errors.New("resend cooldown must be positive")
	}
	if s.auditor == nil {
		s.auditor = audit.NewPublisher(s.logger)
	}
	if s.registry == nil {
		r, err := poller.NewRegistry(poller.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.registry = r
	}
	return s, nil
}

func resendKey(uid string) string {
	return cooldownmodels.Key(cooldownmodels.ActionEmailResend, uid)
}

// Resend sends a new verification email unless the account is already
// verified or the previous email went out less than the cooldown ago.
// Throttling is not an error: the result carries Sent=false and the wait.
func (s *Service) Resend(ctx context.Context, uid string) (*models.ResendResult, error) {
	verified, err := s.identity.EmailVerified(ctx, uid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "verification status is unavailable")
	}
	if verified {
		return nil, dErrors.New(dErrors.CodeConflict, "email is already verified")
	}

	now := requestcontext.Now(ctx)
	key := resendKey(uid)
	decision, err := s.gate.Check(ctx, key, s.cooldown, now)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		s.auditor.Emit(ctx, audit.Event{
			Name:    audit.EventVerificationThrottled,
			UserID:  uid,
			Details: map[string]string{"retry_after": strconv.Itoa(decision.RetryAfterSeconds)},
		})
		return &models.ResendResult{RetryAfterSeconds: decision.RetryAfterSeconds}, nil
	}

	channel, err := s.sender.SendVerification(ctx, uid)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send verification email",
			"user_id", uid,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to send verification email")
	}

	if err := s.gate.RecordFire(ctx, key, now); err != nil {
		s.logger.WarnContext(ctx, "verification email sent but cooldown not recorded",
			"user_id", uid,
			"error", err,
		)
	}

	event := audit.EventVerificationEmailSent
	if channel == models.ChannelFallback {
		event = audit.EventVerificationFallbackSent
	}
	s.auditor.Emit(ctx, audit.Event{Name: event, UserID: uid})

	return &models.ResendResult{
		Sent:            true,
		Channel:         channel,
		CooldownSeconds: int(s.cooldown / time.Second),
	}, nil
}

// Cooldown reports how long until uid may request another email.
func (s *Service) Cooldown(ctx context.Context, uid string) (*models.CooldownStatus, error) {
	remaining, err := s.gate.Remaining(ctx, resendKey(uid), s.cooldown, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	decision := cooldownmodels.NewDecision(remaining)
	return &models.CooldownStatus{
		Allowed:          decision.Allowed,
		RemainingSeconds: decision.RetryAfterSeconds,
	}, nil
}

// StartPolling begins watching uid for verification, or returns the poller
// already doing so.
func (s *Service) StartPolling(ctx context.Context, uid string) (*models.PollStatus, error) {
	requestID := requestcontext.RequestID(ctx)
	attempts := 0
	check := func(pollCtx context.Context) (bool, error) {
		attempts++
		verified, err := s.identity.EmailVerified(pollCtx, uid)
		if err != nil {
			s.auditor.Emit(pollCtx, audit.Event{
				Name:      audit.EventVerificationPollingError,
				UserID:    uid,
				RequestID: requestID,
				Reason:    err.Error(),
				Details:   map[string]string{"attempts": strconv.Itoa(attempts)},
			})
			return false, err
		}
		if verified {
			s.auditor.Emit(pollCtx, audit.Event{
				Name:      audit.EventEmailVerificationSuccess,
				UserID:    uid,
				RequestID: requestID,
				Details:   map[string]string{"attempts": strconv.Itoa(attempts), "method": "polling"},
			})
		}
		return verified, nil
	}
	onTransition := poller.OnTransition(func(t poller.Transition) {
		s.logger.Info("verification polling transition",
			"user_id", uid,
			"from", t.From,
			"to", t.To,
			"attempts", t.Attempts,
			"request_id", requestID,
		)
	})

	p, started, err := s.registry.Start(uid, check, onTransition)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "verification polling is unavailable")
	}
	if !started {
		s.logger.DebugContext(ctx, "verification polling already active", "user_id", uid)
	}
	status := models.NewPollStatus(p.Result(), s.maxAttempts)
	return &status, nil
}

// PollStatus returns the state of uid's most recent poller.
func (s *Service) PollStatus(_ context.Context, uid string) (*models.PollStatus, error) {
	p, ok := s.registry.Get(uid)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "no verification polling for this user")
	}
	status := models.NewPollStatus(p.Result(), s.maxAttempts)
	return &status, nil
}

// CheckNow asks the identity provider once, outside any poller.
func (s *Service) CheckNow(ctx context.Context, uid string) (bool, error) {
	verified, err := s.identity.EmailVerified(ctx, uid)
	if err != nil {
		s.logger.ErrorContext(ctx, "verification check failed",
			"user_id", uid,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "verification status is unavailable")
	}
	if verified {
		s.auditor.Emit(ctx, audit.Event{
			Name:    audit.EventEmailVerificationSuccess,
			UserID:  uid,
			Details: map[string]string{"method": "manual"},
		})
	}
	return verified, nil
}

// Close stops every poller.
func (s *Service) Close(ctx context.Context) error {
	return s.registry.Close(ctx)
}
