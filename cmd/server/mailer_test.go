package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/platform/config"
	verificationfirebase "bloodlink/internal/verification/firebase"
)

func TestVerificationMailer(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		mailer      config.Mailer
		wantLog     bool
	}{
		{name: "log mailer in development", environment: "development", mailer: config.MailerLog, wantLog: true},
		{name: "log mailer with unset environment", environment: "", mailer: config.MailerLog, wantLog: true},
		{name: "log mailer refused in production", environment: "production", mailer: config.MailerLog},
		{name: "log mailer refused in staging", environment: "staging", mailer: config.MailerLog},
		{name: "mailer disabled", environment: "development", mailer: config.MailerNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{
				Server:       config.Server{Environment: tt.environment},
				Verification: config.Verification{Mailer: tt.mailer},
			}
			mailer, err := verificationMailer(cfg, slog.Default())
			if !tt.wantLog {
				assert.Error(t, err)
				assert.Nil(t, mailer)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, verificationfirebase.LogMailer{}, mailer)
		})
	}
}
