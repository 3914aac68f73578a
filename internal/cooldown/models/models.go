package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"bloodlink/pkg/platform/sentinel"
)

// DefaultResendCooldown is the minimum gap between verification emails.
const DefaultResendCooldown = 60 * time.Second

// ActionEmailResend is the action name for verification email resends.
const ActionEmailResend = "emailResend"

// Key builds the store key for an action performed by a principal.
func Key(action, principal string) string {
	return action + "_" + principal
}

// State is the persisted record of the last time an action fired.
// LastSent is milliseconds since the Unix epoch.
type State struct {
	LastSent int64 `json:"lastSent"`
}

func NewState(at time.Time) State {
	return State{LastSent: at.UnixMilli()}
}

func (s State) Time() time.Time {
	return time.UnixMilli(s.LastSent).UTC()
}

func (s State) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeState parses a stored blob. Anything that is not a JSON object with a
// positive lastSent is reported as sentinel.ErrCorrupt.
func DecodeState(raw []byte) (State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("decode cooldown state: %w: %w", sentinel.ErrCorrupt, err)
	}
	if s.LastSent <= 0 {
		return State{}, fmt.Errorf("decode cooldown state: %w: missing lastSent", sentinel.ErrCorrupt)
	}
	return s, nil
}

// Decision is the outcome of a cooldown check.
type Decision struct {
	Allowed           bool          `json:"allowed"`
	Remaining         time.Duration `json:"-"`
	RetryAfterSeconds int           `json:"retry_after"`
}

// NewDecision derives a decision from the time left on the cooldown.
// RetryAfterSeconds rounds up so a client never retries too early.
func NewDecision(remaining time.Duration) Decision {
	if remaining <= 0 {
		return Decision{Allowed: true}
	}
	return Decision{
		Remaining:         remaining,
		RetryAfterSeconds: int(math.Ceil(remaining.Seconds())),
	}
}
