package ports

import "context"

// KVStore is a durable string-keyed blob store. Get returns
// sentinel.ErrNotFound (possibly wrapped) for a missing key. Concurrent
// writes to the same key resolve last-write-wins.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
