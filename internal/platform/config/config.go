package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend selects where cooldown entries are kept.
type Backend string

const (
	BackendMemory    Backend = "memory"
	BackendRedis     Backend = "redis"
	BackendFirestore Backend = "firestore"
	BackendPostgres  Backend = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// RedisConfig configures the shared go-redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type FirebaseConfig struct {
	// Credentials is the decoded service account JSON. Empty means use
	// application default credentials (or the emulators).
	Credentials []byte
	ProjectID   string
}

func (f FirebaseConfig) Enabled() bool {
	return len(f.Credentials) > 0 || f.ProjectID != ""
}

type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Mailer selects how verification links reach users.
type Mailer string

const (
	// MailerLog writes links to the log. Development only.
	MailerLog  Mailer = "log"
	MailerNone Mailer = "none"
)

// Verification configures the resend cooldown and the verification poller.
type Verification struct {
	ResendCooldown  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
	ContinueURL     string
	Mailer          Mailer
}

type Config struct {
	Server          Server
	Redis           RedisConfig
	DatabaseURL     string
	CooldownBackend Backend
	Firebase        FirebaseConfig
	Kafka           KafkaConfig
	Verification    Verification
}

// IsDevelopment reports whether the server runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() (Config, error) {
	p := parser{}
	cfg := Config{
		Server: Server{
			Addr:          p.str("BLOODLINK_ADDR", ":8080"),
			Environment:   p.str("BLOODLINK_ENV", "development"),
			LogLevel:      p.str("LOG_LEVEL", "info"),
			JWTSigningKey: p.str("JWT_SIGNING_KEY", ""),
			JWTIssuer:     p.str("JWT_ISSUER", "bloodlink"),
			JWTAudience:   p.str("JWT_AUDIENCE", "bloodlink-api"),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		DatabaseURL:     p.str("DATABASE_URL", ""),
		CooldownBackend: Backend(strings.ToLower(p.str("COOLDOWN_BACKEND", string(BackendMemory)))),
		Firebase: FirebaseConfig{
			Credentials: p.base64("FIREBASE_CREDENTIALS"),
			ProjectID:   p.str("FIREBASE_PROJECT_ID", ""),
		},
		Kafka: KafkaConfig{
			Brokers:    p.list("KAFKA_BROKERS"),
			AuditTopic: p.str("KAFKA_AUDIT_TOPIC", "bloodlink.audit"),
		},
		Verification: Verification{
			ResendCooldown:  p.duration("RESEND_COOLDOWN", 60*time.Second),
			PollInterval:    p.duration("POLL_INTERVAL", 8*time.Second),
			PollMaxAttempts: p.int("POLL_MAX_ATTEMPTS", 15),
			ContinueURL:     p.str("VERIFY_CONTINUE_URL", ""),
			Mailer:          Mailer(strings.ToLower(p.str("VERIFY_MAILER", string(MailerLog)))),
		},
	}
	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.JWTSigningKey == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SIGNING_KEY is required outside development")
		}
		// Use a default for development - must be overridden in production
		c.Server.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	switch c.CooldownBackend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return errors.New("COOLDOWN_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("COOLDOWN_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendFirestore:
		if !c.Firebase.Enabled() {
			return errors.New("COOLDOWN_BACKEND=firestore requires FIREBASE_CREDENTIALS or FIREBASE_PROJECT_ID")
		}
	default:
		return fmt.Errorf("unknown COOLDOWN_BACKEND %q", c.CooldownBackend)
	}
	switch c.Verification.Mailer {
	case MailerLog, MailerNone:
	default:
		return fmt.Errorf("unknown VERIFY_MAILER %q", c.Verification.Mailer)
	}
	if c.Verification.ResendCooldown <= 0 {
		return errors.New("RESEND_COOLDOWN must be positive")
	}
	if c.Verification.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	if c.Verification.PollMaxAttempts <= 0 {
		return errors.New("POLL_MAX_ATTEMPTS must be positive")
	}
	return nil
}
