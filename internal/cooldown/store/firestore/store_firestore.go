package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodlink/pkg/platform/sentinel"
)

// RateLimitsCollection holds one document per cooldown key.
const RateLimitsCollection = "emailRateLimits"

type entry struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// FirestoreKVStore keeps cooldown entries in Firestore. Keys must not
// contain "/".
type FirestoreKVStore struct {
	client *firestore.Client
}

func New(client *firestore.Client) *FirestoreKVStore {
	return &FirestoreKVStore{client: client}
}

func (s *FirestoreKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.client.Collection(RateLimitsCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("cooldown key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get cooldown: %w", err)
	}
	var e entry
	if err := doc.DataTo(&e); err != nil {
		return nil, fmt.Errorf("decode cooldown document: %w: %w", sentinel.ErrCorrupt, err)
	}
	return []byte(e.Value), nil
}

func (s *FirestoreKVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.Collection(RateLimitsCollection).Doc(key).Set(ctx, entry{
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("firestore set cooldown: %w", err)
	}
	return nil
}

func (s *FirestoreKVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.client.Collection(RateLimitsCollection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete cooldown: %w", err)
	}
	return nil
}
