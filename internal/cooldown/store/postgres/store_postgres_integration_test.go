//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/pkg/platform/sentinel"
	txcontext "bloodlink/pkg/platform/tx"
)

func TestPostgresKVStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	store := New(db)
	key := "emailResend_integration"
	_ = store.Remove(ctx, key)

	_, err = store.Get(ctx, key)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	require.NoError(t, store.Set(ctx, key, []byte(`{"lastSent":1}`)))
	require.NoError(t, store.Set(ctx, key, []byte(`{"lastSent":2}`)))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"lastSent":2}`, string(got))

	require.NoError(t, store.Remove(ctx, key))
	_, err = store.Get(ctx, key)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	t.Run("rolled back transaction leaves no entry", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		txCtx := txcontext.WithTx(ctx, tx)

		require.NoError(t, store.Set(txCtx, key, []byte(`{"lastSent":3}`)))
		got, err := store.Get(txCtx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"lastSent":3}`, string(got))
		require.NoError(t, tx.Rollback())

		_, err = store.Get(ctx, key)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})
}
