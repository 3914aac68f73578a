package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/donor/models"
	"bloodlink/pkg/platform/sentinel"
)

func TestInMemoryDonorStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("registered donors are role filtered and newest first", func(t *testing.T) {
		store := New()
		store.PutUser(models.RegisteredUser{ID: "old", Role: "donor", BloodGroup: "A+", CreatedAt: base})
		store.PutUser(models.RegisteredUser{ID: "new", Role: "donor", BloodGroup: "B+", CreatedAt: base.Add(time.Hour)})
		store.PutUser(models.RegisteredUser{ID: "hospital", Role: "hospital", CreatedAt: base.Add(2 * time.Hour)})

		donors, err := store.ListRegisteredDonors(ctx)
		require.NoError(t, err)
		require.Len(t, donors, 2)
		assert.Equal(t, "new", donors[0].ID)
		assert.Equal(t, "old", donors[1].ID)
		assert.Equal(t, models.SourceRegistered, donors[0].Source)
	})

	t.Run("registered donors are capped", func(t *testing.T) {
		store := New()
		for i := range RegisteredDonorLimit + 5 {
			store.PutUser(models.RegisteredUser{
				ID:        fmt.Sprintf("u%03d", i),
				Role:      "donor",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
		}

		donors, err := store.ListRegisteredDonors(ctx)
		require.NoError(t, err)
		assert.Len(t, donors, RegisteredDonorLimit)
		assert.Equal(t, fmt.Sprintf("u%03d", RegisteredDonorLimit+4), donors[0].ID)
	})

	t.Run("quick donors keep insertion order", func(t *testing.T) {
		store := New()
		store.AddQuickUser(models.QuickUser{ID: "q1", Name: "A", BloodGroup: "O+"})
		store.AddQuickUser(models.QuickUser{ID: "q2", Name: "B", BloodGroup: "O-"})

		donors, err := store.ListQuickDonors(ctx)
		require.NoError(t, err)
		require.Len(t, donors, 2)
		assert.Equal(t, "q1", donors[0].ID)
		assert.Equal(t, models.SourceQuick, donors[1].Source)
	})

	t.Run("GetUser for missing id returns not found", func(t *testing.T) {
		_, err := New().GetUser(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryDonorStore_Concurrent(t *testing.T) {
	store := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.PutUser(models.RegisteredUser{ID: fmt.Sprintf("u%d", i), Role: "donor"})
		}()
		go func() {
			defer wg.Done()
			_, err := store.ListRegisteredDonors(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	donors, err := store.ListRegisteredDonors(ctx)
	require.NoError(t, err)
	assert.Len(t, donors, 20)
}
