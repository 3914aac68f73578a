package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bloodlink/internal/location"
	"bloodlink/internal/request/models"
	"bloodlink/pkg/domain"
)

func req(id string, group domain.BloodGroup, qty int, urgency domain.Urgency, loc string) models.Request {
	return models.Request{
		ID:         id,
		BloodGroup: group,
		Quantity:   qty,
		Urgency:    urgency,
		Location:   location.Parse(loc),
		Status:     domain.RequestStatusActive,
	}
}

func TestGroupByBloodGroup(t *testing.T) {
	t.Run("max severity roll-up", func(t *testing.T) {
		result := GroupByBloodGroup([]models.Request{
			req("1", domain.BloodGroupONeg, 2, domain.UrgencyUrgent, ""),
			req("2", domain.BloodGroupONeg, 3, domain.UrgencyCritical, ""),
			req("3", domain.BloodGroupAPos, 1, domain.UrgencyModerate, ""),
		}, models.OrderFirstSeen)

		assert.Equal(t, []models.Summary{
			{BloodGroup: domain.BloodGroupONeg, TotalUnits: 5, RequestCount: 2, Urgency: domain.UrgencyCritical},
			{BloodGroup: domain.BloodGroupAPos, TotalUnits: 1, RequestCount: 1, Urgency: domain.UrgencyModerate},
		}, result.Summaries)
		assert.Zero(t, result.SkippedCount)
	})

	t.Run("urgent beats moderate regardless of order", func(t *testing.T) {
		result := GroupByBloodGroup([]models.Request{
			req("1", domain.BloodGroupBPos, 1, domain.UrgencyUrgent, ""),
			req("2", domain.BloodGroupBPos, 1, domain.UrgencyModerate, ""),
		}, models.OrderFirstSeen)
		assert.Equal(t, domain.UrgencyUrgent, result.Summaries[0].Urgency)
	})

	t.Run("invalid blood groups are skipped and counted", func(t *testing.T) {
		result := GroupByBloodGroup([]models.Request{
			req("1", domain.BloodGroup("Unknown"), 4, domain.UrgencyCritical, ""),
			req("2", domain.BloodGroupABNeg, 1, domain.UrgencyModerate, ""),
			req("3", domain.BloodGroup(""), 1, domain.UrgencyModerate, ""),
		}, models.OrderFirstSeen)
		assert.Len(t, result.Summaries, 1)
		assert.Equal(t, 2, result.SkippedCount)
	})

	t.Run("reference order", func(t *testing.T) {
		requests := []models.Request{
			req("1", domain.BloodGroupONeg, 1, domain.UrgencyModerate, ""),
			req("2", domain.BloodGroupABPos, 1, domain.UrgencyModerate, ""),
			req("3", domain.BloodGroupAPos, 1, domain.UrgencyModerate, ""),
		}
		var groups []domain.BloodGroup
		for _, s := range GroupByBloodGroup(requests, models.OrderReference).Summaries {
			groups = append(groups, s.BloodGroup)
		}
		assert.Equal(t, []domain.BloodGroup{domain.BloodGroupAPos, domain.BloodGroupABPos, domain.BloodGroupONeg}, groups)
	})

	t.Run("empty input", func(t *testing.T) {
		result := GroupByBloodGroup(nil, models.OrderFirstSeen)
		assert.NotNil(t, result.Summaries)
		assert.Empty(t, result.Summaries)
	})
}

func TestFilter(t *testing.T) {
	requests := []models.Request{
		req("1", domain.BloodGroupAPos, 2, domain.UrgencyCritical, "Ramna, Dhaka, Dhaka Division"),
		req("2", domain.BloodGroupONeg, 1, domain.UrgencyUrgent, "Sylhet Sadar, Sylhet, Sylhet Division"),
		req("3", domain.BloodGroupAPos, 1, domain.UrgencyModerate, "Savar, Dhaka, Dhaka Division"),
	}

	tests := []struct {
		name     string
		criteria models.Criteria
		want     []string
	}{
		{"no criteria", models.Criteria{}, []string{"1", "2", "3"}},
		{"blood group", models.Criteria{BloodGroup: domain.BloodGroupAPos}, []string{"1", "3"}},
		{"urgency", models.Criteria{Urgency: domain.UrgencyCritical}, []string{"1"}},
		{"location", models.Criteria{Location: location.Filter{Division: "sylhet"}}, []string{"2"}},
		{"combined", models.Criteria{BloodGroup: domain.BloodGroupAPos, Location: location.Filter{SubDistrict: "savar"}}, []string{"3"}},
		{"nothing matches", models.Criteria{BloodGroup: domain.BloodGroupBNeg}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, r := range Filter(requests, tt.criteria) {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
