package main

import (
	"errors"
	"fmt"
	"log/slog"

	"bloodlink/internal/platform/config"
	verificationfirebase "bloodlink/internal/verification/firebase"
)

var errNoMailer = errors.New("no verification mailer configured")

// verificationMailer picks the mailer for verification links. Links are
// bearer secrets, so the log mailer is refused outside development.
func verificationMailer(cfg config.Config, log *slog.Logger) (verificationfirebase.Mailer, error) {
	switch cfg.Verification.Mailer {
	case config.MailerLog:
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("VERIFY_MAILER=%s is limited to development, environment is %q",
				cfg.Verification.Mailer, cfg.Server.Environment)
		}
		return verificationfirebase.LogMailer{Logger: log}, nil
	default:
		return nil, errNoMailer
	}
}
