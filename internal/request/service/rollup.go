package service

import (
	"slices"

	"bloodlink/internal/location"
	"bloodlink/internal/request/models"
	"bloodlink/pkg/domain"
)

// GroupByBloodGroup partitions requests by blood group and rolls each group
// up: units are summed, requests counted, and the urgency is the most severe
// one present. Requests with an invalid blood group are left out and counted
// in SkippedCount.
func GroupByBloodGroup(requests []models.Request, order models.Order) models.GroupResult {
	result := models.GroupResult{Summaries: []models.Summary{}}
	index := make(map[domain.BloodGroup]int)

	for _, r := range requests {
		if !r.BloodGroup.IsValid() {
			result.SkippedCount++
			continue
		}
		i, seen := index[r.BloodGroup]
		if !seen {
			i = len(result.Summaries)
			index[r.BloodGroup] = i
			result.Summaries = append(result.Summaries, models.Summary{
				BloodGroup: r.BloodGroup,
				Urgency:    domain.UrgencyModerate,
			})
		}
		summary := &result.Summaries[i]
		summary.TotalUnits += r.Quantity
		summary.RequestCount++
		if u := domain.NormalizeUrgency(string(r.Urgency)); u.Severity() > summary.Urgency.Severity() {
			summary.Urgency = u
		}
	}

	if order == models.OrderReference {
		slices.SortStableFunc(result.Summaries, func(a, b models.Summary) int {
			return a.BloodGroup.Rank() - b.BloodGroup.Rank()
		})
	}
	return result
}

// Filter keeps the requests matching every set criterion: location through
// location.Matches, blood group and canonical urgency by equality. Input
// order is preserved.
func Filter(requests []models.Request, criteria models.Criteria) []models.Request {
	out := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if criteria.BloodGroup != "" && r.BloodGroup != criteria.BloodGroup {
			continue
		}
		if criteria.Urgency != "" && r.Urgency != criteria.Urgency {
			continue
		}
		if !location.Matches(r.Location, criteria.Location) {
			continue
		}
		out = append(out, r)
	}
	return out
}
