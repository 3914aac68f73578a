package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventName identifies a security-relevant action.
type EventName string

const (
	EventEmailVerificationSuccess EventName = "email_verification_success"
	EventVerificationEmailSent    EventName = "verification_email_sent"
	EventVerificationFallbackSent EventName = "verification_email_sent_fallback"
	EventVerificationPollingError EventName = "verification_polling_error"
	EventVerificationThrottled    EventName = "verification_resend_throttled"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Name      EventName         `json:"name"`
	Timestamp time.Time         `json:"timestamp"`
	UserID    string            `json:"user_id,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}
