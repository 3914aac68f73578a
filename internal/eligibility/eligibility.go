// Package eligibility decides whether a donor may donate again.
//
// Everything here is pure: callers pass the last donation and "now"
// explicitly, and results are recomputed on every call.
package eligibility

import (
	"math"
	"time"
)

// CooldownDays is the minimum gap between whole-blood donations.
const CooldownDays = 56

const day = 24 * time.Hour

// State is the derived eligibility of one donor at one instant.
// DaysSinceLastDonation is nil when the donor has never donated (or the
// stored date could not be read).
type State struct {
	DaysSinceLastDonation *int    `json:"days_since_last_donation"`
	DaysUntilEligible     int     `json:"days_until_eligible"`
	IsEligible            bool    `json:"is_eligible"`
	ProgressPercent       float64 `json:"progress_percent"`
}

// Evaluate applies the cooldown rule. A nil lastDonation means never donated,
// which is immediately eligible. A future-dated donation yields a countdown
// longer than the cooldown rather than a negative one.
func Evaluate(lastDonation *time.Time, now time.Time) State {
	if lastDonation == nil {
		return State{IsEligible: true, ProgressPercent: 100}
	}

	days := DaysBetween(*lastDonation, now)
	until := max(0, CooldownDays-days)
	return State{
		DaysSinceLastDonation: &days,
		DaysUntilEligible:     until,
		IsEligible:            until == 0,
		ProgressPercent:       math.Min(100, float64(days)/CooldownDays*100),
	}
}

// IsEligible is shorthand for Evaluate(lastDonation, now).IsEligible.
func IsEligible(lastDonation *time.Time, now time.Time) bool {
	return Evaluate(lastDonation, now).IsEligible
}

// DaysBetween returns floor((to - from) / 1 day). Negative when from is after to.
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}

// Badge is the donation recency label shown next to a donor.
type Badge string

const (
	BadgeRecent        Badge = "recent"
	BadgeAvailableSoon Badge = "available_soon"
	BadgeReady         Badge = "ready"
)

// Status labels donors by recency: under one cooldown period is recent,
// under two is available soon, anything older (or never) is ready.
func Status(lastDonation *time.Time, now time.Time) Badge {
	if lastDonation == nil {
		return BadgeReady
	}
	switch days := DaysBetween(*lastDonation, now); {
	case days < CooldownDays:
		return BadgeRecent
	case days < 2*CooldownDays:
		return BadgeAvailableSoon
	default:
		return BadgeReady
	}
}
