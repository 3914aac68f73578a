//go:build integration

package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/pkg/domain"
)

func TestFirestoreRequestStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "bloodlink-test")
	require.NoError(t, err)
	defer client.Close()

	now := time.Now().UTC()
	requests := client.Collection(RequestsCollection)
	_, err = requests.Doc("active-1").Set(ctx, map[string]any{
		"bloodGroup": "B-",
		"quantity":   2,
		"urgency":    "emergency",
		"location":   "Ramna, Dhaka, Dhaka Division",
		"status":     "active",
		"createdAt":  now,
	})
	require.NoError(t, err)
	_, err = requests.Doc("closed-1").Set(ctx, map[string]any{
		"bloodGroup": "B-",
		"status":     "completed",
		"createdAt":  now,
	})
	require.NoError(t, err)

	got, err := New(client, nil).ListActiveRequests(ctx)
	require.NoError(t, err)

	var found bool
	for _, r := range got {
		assert.NotEqual(t, "closed-1", r.ID)
		if r.ID == "active-1" {
			found = true
			assert.Equal(t, domain.UrgencyCritical, r.Urgency)
			assert.Equal(t, 2, r.Quantity)
		}
	}
	assert.True(t, found)
}
