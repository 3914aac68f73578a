package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/pkg/platform/sentinel"
)

func TestInMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	assert.NoError(t, store.Remove(ctx, "k"))
}

func TestInMemoryKVStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "shared", fmt.Appendf(nil, "%d", i))
			_, _ = store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	_, err := store.Get(ctx, "shared")
	assert.NoError(t, err)
}
