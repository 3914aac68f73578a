package models

import "bloodlink/internal/poller"

// Channel names the path a verification email went out on.
type Channel string

const (
	ChannelPrimary  Channel = "primary"
	ChannelFallback Channel = "fallback"
)

// ResendResult is the outcome of a resend request. When Sent is false the
// caller was throttled and RetryAfterSeconds says for how long.
type ResendResult struct {
	Sent              bool    `json:"sent"`
	Channel           Channel `json:"channel,omitempty"`
	CooldownSeconds   int     `json:"cooldown_seconds,omitempty"`
	RetryAfterSeconds int     `json:"retry_after,omitempty"`
}

// CooldownStatus reports the time left before another resend is allowed.
type CooldownStatus struct {
	Allowed          bool `json:"allowed"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// PollStatus is the externally visible state of a verification poller.
// Reason distinguishes "still not verified" (attempts_exhausted) from "an
// error occurred" (check_failed).
type PollStatus struct {
	State       poller.State  `json:"state"`
	Attempts    int           `json:"attempts"`
	MaxAttempts int           `json:"max_attempts"`
	Reason      poller.Reason `json:"reason,omitempty"`
	Error       string        `json:"error,omitempty"`
	Verified    bool          `json:"verified"`
}

const checkFailedMessage = "verification status could not be checked"

// NewPollStatus converts a poller result. Check errors are reported with a
// fixed message; the cause is logged, not returned.
func NewPollStatus(r poller.Result, maxAttempts int) PollStatus {
	status := PollStatus{
		State:       r.State,
		Attempts:    r.Attempts,
		MaxAttempts: maxAttempts,
		Reason:      r.Reason,
		Verified:    r.State == poller.StateSucceeded,
	}
	if r.Err != nil {
		status.Error = checkFailedMessage
	}
	return status
}
