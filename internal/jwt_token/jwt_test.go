package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/pkg/domain"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/requestcontext"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-signing-key", "bloodlink", "bloodlink-api")
	now := time.Now()
	donated := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("round trips identity", func(t *testing.T) {
		token, err := svc.GenerateToken(requestcontext.Identity{
			UserID:       "user-1",
			Role:         domain.RoleDonor,
			BloodGroup:   "O+",
			LastDonation: &donated,
			Location:     "Dhanmondi, Dhaka, Dhaka",
		}, now, time.Hour)
		require.NoError(t, err)

		identity, err := svc.ValidateIdentity(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.UserID)
		assert.Equal(t, domain.RoleDonor, identity.Role)
		assert.Equal(t, "O+", identity.BloodGroup)
		require.NotNil(t, identity.LastDonation)
		assert.True(t, donated.Equal(*identity.LastDonation))
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(requestcontext.Identity{UserID: "user-1"}, now.Add(-2*time.Hour), time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		other := NewJWTService("other-key", "bloodlink", "bloodlink-api")
		token, err := other.GenerateToken(requestcontext.Identity{UserID: "user-1"}, now, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateIdentity("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
