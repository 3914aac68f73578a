package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bloodlink/internal/audit"
	cooldownmetrics "bloodlink/internal/cooldown/metrics"
	"bloodlink/internal/cooldown/ports"
	cooldownservice "bloodlink/internal/cooldown/service"
	cooldownfirestore "bloodlink/internal/cooldown/store/firestore"
	cooldownmemory "bloodlink/internal/cooldown/store/memory"
	cooldownpostgres "bloodlink/internal/cooldown/store/postgres"
	cooldownredis "bloodlink/internal/cooldown/store/redis"
	donorhandler "bloodlink/internal/donor/handler"
	donormetrics "bloodlink/internal/donor/metrics"
	donorservice "bloodlink/internal/donor/service"
	donorfirestore "bloodlink/internal/donor/store/firestore"
	donormemory "bloodlink/internal/donor/store/memory"
	eligibilityhandler "bloodlink/internal/eligibility/handler"
	geohandler "bloodlink/internal/geo/handler"
	jwttoken "bloodlink/internal/jwt_token"
	"bloodlink/internal/platform/config"
	platformfirebase "bloodlink/internal/platform/firebase"
	"bloodlink/internal/platform/httpserver"
	"bloodlink/internal/platform/kafka"
	"bloodlink/internal/platform/logger"
	"bloodlink/internal/platform/metrics"
	platformredis "bloodlink/internal/platform/redis"
	"bloodlink/internal/poller"
	pollermetrics "bloodlink/internal/poller/metrics"
	requesthandler "bloodlink/internal/request/handler"
	requestmetrics "bloodlink/internal/request/metrics"
	requestservice "bloodlink/internal/request/service"
	requestfirestore "bloodlink/internal/request/store/firestore"
	requestmemory "bloodlink/internal/request/store/memory"
	verificationfirebase "bloodlink/internal/verification/firebase"
	verificationhandler "bloodlink/internal/verification/handler"
	verificationservice "bloodlink/internal/verification/service"
	"bloodlink/pkg/platform/circuit"
	authmw "bloodlink/pkg/platform/middleware/auth"
	"bloodlink/pkg/platform/middleware/request"
	"bloodlink/pkg/platform/middleware/requesttime"
)

const auditOutboxSize = 256

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		slog.Error("bloodlink exited", "error", err)
		os.Exit(1)
	}
}

// closer collects cleanup funcs and runs them in reverse order.
type closer []func()

func (c *closer) add(fn func()) { *c = append(*c, fn) }

func (c *closer) run() {
	for i := len(*c) - 1; i >= 0; i-- {
		(*c)[i]()
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cleanup closer
	defer cleanup.run()

	var fb *platformfirebase.Clients
	if cfg.Firebase.Enabled() {
		fb, err = platformfirebase.New(ctx, cfg.Firebase)
		if err != nil {
			return err
		}
		cleanup.add(func() { _ = fb.Close() })
	}

	health := healthChecks{}
	kvStore, err := newCooldownStore(ctx, cfg, fb, health, &cleanup)
	if err != nil {
		return err
	}

	auditor, err := newAuditPublisher(ctx, cfg, log, &cleanup)
	if err != nil {
		return err
	}

	donorStore, userStore, requestStore := newDataStores(fb, log)

	donorSvc, err := donorservice.New(donorStore,
		donorservice.WithLogger(log),
		donorservice.WithMetrics(donormetrics.New()),
		donorservice.WithUserStore(userStore),
	)
	if err != nil {
		return err
	}
	requestSvc, err := requestservice.New(requestStore,
		requestservice.WithLogger(log),
		requestservice.WithMetrics(requestmetrics.New()),
	)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	httpMetrics := metrics.New()

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(httpMetrics.Middleware)

	r.Get("/health", health.handle)
	r.Handle("/metrics", promhttp.Handler())

	geohandler.New().Register(r)
	eligibilityhandler.New().Register(r)
	requesthandler.New(requestSvc, log).Register(r)
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuth(jwtService, log))
		donorhandler.New(donorSvc, log).Register(r)
	})

	mailer, mailerErr := verificationMailer(cfg, log)
	switch {
	case fb == nil:
		log.Info("firebase not configured; verification routes disabled")
	case mailerErr != nil:
		log.Warn("verification routes disabled", "reason", mailerErr)
	default:
		verificationSvc, err := newVerificationService(cfg, fb, mailer, kvStore, auditor, log)
		if err != nil {
			return err
		}
		cleanup.add(func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = verificationSvc.Close(shutdownCtx)
		})
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(jwtService, log))
			verificationhandler.New(verificationSvc, log).Register(r)
		})
	}

	srv := httpserver.New(cfg.Server.Addr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting bloodlink", "addr", cfg.Server.Addr, "cooldown_backend", cfg.CooldownBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newCooldownStore(ctx context.Context, cfg config.Config, fb *platformfirebase.Clients, health healthChecks, cleanup *closer) (ports.KVStore, error) {
	switch cfg.CooldownBackend {
	case config.BackendRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		cleanup.add(func() { _ = client.Close() })
		health["redis"] = client.Health
		return cooldownredis.New(client), nil
	case config.BackendPostgres:
		db, err := cooldownpostgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		cleanup.add(func() { _ = db.Close() })
		health["postgres"] = db.PingContext
		return cooldownpostgres.New(db), nil
	case config.BackendFirestore:
		if fb == nil {
			return nil, errors.New("firestore cooldown backend requires firebase")
		}
		return cooldownfirestore.New(fb.Firestore), nil
	default:
		return cooldownmemory.New(), nil
	}
}

func newAuditPublisher(ctx context.Context, cfg config.Config, log *slog.Logger, cleanup *closer) (*audit.Publisher, error) {
	if !cfg.Kafka.Enabled() {
		return audit.NewPublisher(log), nil
	}
	producer, err := kafka.NewProducer(ctx, cfg.Kafka)
	if err != nil {
		return nil, err
	}
	outbox := make(chan audit.Event, auditOutboxSize)
	worker := audit.NewWorker(audit.NewKafkaSink(producer, cfg.Kafka.AuditTopic), outbox, log)
	workerCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(workerCtx)
	}()
	// Emitters are stopped before this runs, so closing the outbox lets the
	// worker drain what is buffered.
	cleanup.add(func() {
		close(outbox)
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			cancel()
			<-done
		}
		cancel()
		producer.Close()
	})
	return audit.NewPublisher(log, audit.WithOutbox(outbox)), nil
}

func newDataStores(fb *platformfirebase.Clients, log *slog.Logger) (donorservice.Store, donorservice.UserStore, requestservice.Store) {
	if fb == nil {
		donors := donormemory.New()
		return donors, donors, requestmemory.New()
	}
	donors := donorfirestore.New(fb.Firestore, log)
	return donors, donors, requestfirestore.New(fb.Firestore, log)
}

func newVerificationService(cfg config.Config, fb *platformfirebase.Clients, mailer verificationfirebase.Mailer, kv ports.KVStore, auditor *audit.Publisher, log *slog.Logger) (*verificationservice.Service, error) {
	gate, err := cooldownservice.New(kv,
		cooldownservice.WithLogger(log),
		cooldownservice.WithMetrics(cooldownmetrics.New()),
	)
	if err != nil {
		return nil, err
	}
	registry, err := poller.NewRegistry(
		poller.WithInterval(cfg.Verification.PollInterval),
		poller.WithMaxAttempts(cfg.Verification.PollMaxAttempts),
		poller.WithLogger(log),
		poller.WithMetrics(pollermetrics.New()),
	)
	if err != nil {
		return nil, err
	}

	sender := &verificationfirebase.FallbackSender{
		Primary: verificationfirebase.NewLinkSender(fb.Auth, mailer,
			verificationfirebase.WithContinueURL(cfg.Verification.ContinueURL)),
		Fallback: verificationfirebase.NewLinkSender(fb.Auth, mailer, verificationfirebase.AsFallback()),
		Breaker:  circuit.New("verification-sender"),
		Logger:   log,
	}
	return verificationservice.New(gate, sender, verificationfirebase.NewIdentityProvider(fb.Auth),
		verificationservice.WithLogger(log),
		verificationservice.WithAuditor(auditor),
		verificationservice.WithCooldown(cfg.Verification.ResendCooldown),
		verificationservice.WithRegistry(registry, cfg.Verification.PollMaxAttempts),
	)
}
