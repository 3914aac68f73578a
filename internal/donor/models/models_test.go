package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/location"
	"bloodlink/pkg/domain"
)

func TestFromQuickUser(t *testing.T) {
	d := FromQuickUser(QuickUser{
		ID:         "q1",
		Name:       "  ",
		BloodGroup: "o-",
		Phone:      "01700000000",
		Location:   "Savar, Dhaka, Dhaka Division",
	})

	assert.Equal(t, "Anonymous", d.Name)
	assert.Equal(t, domain.BloodGroupONeg, d.BloodGroup)
	assert.Equal(t, location.Location{SubDistrict: "Savar", District: "Dhaka", Division: "Dhaka Division"}, d.Location)
	assert.Nil(t, d.LastDonation)
	assert.Equal(t, SourceQuick, d.Source)
}

func TestFromRegisteredUser(t *testing.T) {
	t.Run("prefers whatsapp and parses donation", func(t *testing.T) {
		d := FromRegisteredUser(RegisteredUser{
			ID:             "r1",
			FullName:       "Rahim",
			BloodGroup:     "AB+",
			LastDonation:   "2024-02-01",
			WhatsappNumber: "0188",
			Phone:          "0199",
		})
		assert.Equal(t, "0188", d.ContactPhone)
		require.NotNil(t, d.LastDonation)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *d.LastDonation)
		assert.Equal(t, SourceRegistered, d.Source)
	})

	t.Run("keeps invalid blood group verbatim", func(t *testing.T) {
		d := FromRegisteredUser(RegisteredUser{ID: "r2", BloodGroup: "Unknown", Phone: "0199"})
		assert.Equal(t, domain.BloodGroup("Unknown"), d.BloodGroup)
		assert.False(t, d.BloodGroup.IsValid())
		assert.Equal(t, "0199", d.ContactPhone)
	})
}

func TestCurrentUserFromProfile(t *testing.T) {
	donated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := CurrentUser{ID: "u1", Role: domain.RoleDonor, BloodGroup: "B+"}
	profile := RegisteredUser{
		FullName:     "Karim",
		Role:         "recipient",
		BloodGroup:   "A+",
		LastDonation: donated,
		Location:     "Savar, Dhaka, Dhaka Division",
		Phone:        "0155",
	}

	got := CurrentUserFromProfile(base, profile)
	assert.Equal(t, "Karim", got.Name)
	assert.Equal(t, domain.RoleDonor, got.Role)
	assert.Equal(t, "B+", got.BloodGroup)
	require.NotNil(t, got.LastDonation)
	assert.Equal(t, donated, *got.LastDonation)
	assert.Equal(t, "0155", got.Phone)

	d := FromCurrentUser(got)
	assert.Equal(t, SourceCurrentUser, d.Source)
	assert.Equal(t, "Dhaka", d.Location.District)
}
