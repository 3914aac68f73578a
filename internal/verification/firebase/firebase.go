// Package firebase adapts Firebase Authentication to the verification ports.
package firebase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"firebase.google.com/go/auth"

	"bloodlink/internal/verification/models"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/email"
	"bloodlink/pkg/platform/circuit"
	"bloodlink/pkg/platform/sentinel"
)

// AuthClient is the subset of *auth.Client used here.
type AuthClient interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	EmailVerificationLink(ctx context.Context, email string) (string, error)
	EmailVerificationLinkWithSettings(ctx context.Context, email string, settings *auth.ActionCodeSettings) (string, error)
}

// IdentityProvider reads email verification state from Firebase Auth.
type IdentityProvider struct {
	auth AuthClient
}

func NewIdentityProvider(client AuthClient) *IdentityProvider {
	return &IdentityProvider{auth: client}
}

func (p *IdentityProvider) EmailVerified(ctx context.Context, uid string) (bool, error) {
	user, err := getUser(ctx, p.auth, uid)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}

func getUser(ctx context.Context, client AuthClient, uid string) (*auth.UserRecord, error) {
	user, err := client.GetUser(ctx, uid)
	if auth.IsUserNotFound(err) {
		return nil, fmt.Errorf("firebase user %q: %w", uid, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("firebase get user: %w", err)
	}
	return user, nil
}

// Message is a verification email ready for delivery.
type Message struct {
	To       string
	Greeting string
	Link     string
}

// Mailer delivers verification messages.
type Mailer interface {
	SendVerificationLink(ctx context.Context, msg Message) error
}

// LinkSender generates a Firebase verification link server-side and hands it
// to a Mailer. With a continue URL the link returns the user to the app's
// verify page with their email prefilled.
type LinkSender struct {
	auth        AuthClient
	mailer      Mailer
	continueURL string
	channel     models.Channel
}

type LinkOption func(*LinkSender)

func WithContinueURL(u string) LinkOption {
	return func(s *LinkSender) {
		s.continueURL = u
	}
}

// AsFallback marks deliveries from this sender as the fallback channel.
func AsFallback() LinkOption {
	return func(s *LinkSender) {
		s.channel = models.ChannelFallback
	}
}

func NewLinkSender(client AuthClient, mailer Mailer, opts ...LinkOption) *LinkSender {
	s := &LinkSender{auth: client, mailer: mailer, channel: models.ChannelPrimary}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LinkSender) SendVerification(ctx context.Context, uid string) (models.Channel, error) {
	user, err := getUser(ctx, s.auth, uid)
	if err != nil {
		return "", err
	}
	if user.UserInfo == nil || user.Email == "" {
		return "", dErrors.New(dErrors.CodeValidation, "no email associated with this account")
	}

	link, err := s.link(ctx, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate verification link: %w", err)
	}

	msg := Message{To: user.Email, Greeting: email.GreetingName(user.Email), Link: link}
	if err := s.mailer.SendVerificationLink(ctx, msg); err != nil {
		return "", fmt.Errorf("deliver verification link: %w", err)
	}
	return s.channel, nil
}

func (s *LinkSender) link(ctx context.Context, address string) (string, error) {
	if s.continueURL == "" {
		return s.auth.EmailVerificationLink(ctx, address)
	}
	u, err := url.Parse(s.continueURL)
	if err != nil {
		return "", fmt.Errorf("parse continue URL: %w", err)
	}
	q := u.Query()
	q.Set("email", address)
	u.RawQuery = q.Encode()
	return s.auth.EmailVerificationLinkWithSettings(ctx, address, &auth.ActionCodeSettings{
		URL:             u.String(),
		HandleCodeInApp: false,
	})
}

// Sender matches the verification service's sender port.
type Sender interface {
	SendVerification(ctx context.Context, uid string) (models.Channel, error)
}

// FallbackSender tries Primary and, on any failure, Fallback. A delivery by
// Fallback is always reported as the fallback channel. With a Breaker, Primary
// is skipped while the breaker is open; fallback deliveries count toward
// closing it.
type FallbackSender struct {
	Primary  Sender
	Fallback Sender
	Breaker  *circuit.Breaker
	Logger   *slog.Logger
}

func (s *FallbackSender) SendVerification(ctx context.Context, uid string) (models.Channel, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if s.Breaker != nil && s.Breaker.IsOpen() {
		if _, err := s.Fallback.SendVerification(ctx, uid); err != nil {
			s.Breaker.RecordFailure()
			return "", fmt.Errorf("fallback sender: %w", err)
		}
		if _, change := s.Breaker.RecordSuccess(); change.Closed {
			logger.InfoContext(ctx, "primary verification sender re-enabled", "breaker", s.Breaker.Name())
		}
		return models.ChannelFallback, nil
	}

	channel, err := s.Primary.SendVerification(ctx, uid)
	if err == nil {
		if s.Breaker != nil {
			s.Breaker.RecordSuccess()
		}
		return channel, nil
	}
	if s.Breaker != nil {
		if _, change := s.Breaker.RecordFailure(); change.Opened {
			logger.WarnContext(ctx, "primary verification sender disabled after repeated failures", "breaker", s.Breaker.Name())
		}
	}
	logger.WarnContext(ctx, "primary verification sender failed, using fallback",
		"user_id", uid,
		"error", err,
	)
	if _, fbErr := s.Fallback.SendVerification(ctx, uid); fbErr != nil {
		return "", fmt.Errorf("fallback sender: %w (primary: %v)", fbErr, err)
	}
	return models.ChannelFallback, nil
}

// LogMailer writes verification links to the log instead of sending mail.
// It is meant for development, where no mail provider is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendVerificationLink(ctx context.Context, msg Message) error {
	if !email.Valid(msg.To) {
		return dErrors.New(dErrors.CodeValidation, "invalid recipient address")
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "verification link generated",
		"to", msg.To,
		"greeting", msg.Greeting,
		"link", msg.Link,
	)
	return nil
}
