package service

import (
	"time"

	"bloodlink/internal/donor/models"
	"bloodlink/internal/eligibility"
	"bloodlink/internal/location"
	"bloodlink/pkg/domain"
)

// Aggregate merges donor sources into one filtered list.
//
// Records belonging to the current user are dropped from the sources, the
// rest are filtered by blood group (exact) and location (see
// location.Matches), preserving input order. When the current user is an
// eligible donor, a record for them is appended last regardless of the
// filters, so they always see themselves.
//
// Records with an invalid blood group are counted in SkippedCount. They are
// still listed when no blood-group filter is set, and never match one.
//
// Aggregate is pure: identical inputs and now give identical output.
func Aggregate(sources [][]models.Donor, criteria models.Criteria, current *models.CurrentUser, now time.Time) models.Result {
	result := models.Result{Donors: []models.Donor{}}

	for _, source := range sources {
		for _, d := range source {
			if current != nil && current.ID != "" && d.ID == current.ID {
				continue
			}
			if !d.BloodGroup.IsValid() {
				result.SkippedCount++
			}
			if !matchesBloodGroup(d.BloodGroup, criteria.BloodGroup) {
				continue
			}
			if !location.Matches(d.Location, criteria.Location) {
				continue
			}
			result.Donors = append(result.Donors, d)
		}
	}

	if current != nil && current.Role == domain.RoleDonor && eligibility.IsEligible(current.LastDonation, now) {
		result.Donors = append(result.Donors, models.FromCurrentUser(*current))
	}
	return result
}

func matchesBloodGroup(group, want domain.BloodGroup) bool {
	if want == "" {
		return true
	}
	return group.IsValid() && group == want
}
