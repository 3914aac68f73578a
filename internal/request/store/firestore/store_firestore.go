package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bloodlink/internal/request/models"
	"bloodlink/pkg/domain"
)

const RequestsCollection = "requests"

// FirestoreRequestStore reads the requests collection.
type FirestoreRequestStore struct {
	client *firestore.Client
	logger *slog.Logger
}

func New(client *firestore.Client, logger *slog.Logger) *FirestoreRequestStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FirestoreRequestStore{client: client, logger: logger}
}

// ListActiveRequests returns active requests newest first. Documents that
// fail to decode are skipped.
func (s *FirestoreRequestStore) ListActiveRequests(ctx context.Context) ([]models.Request, error) {
	iter := s.client.Collection(RequestsCollection).
		Where("status", "==", string(domain.RequestStatusActive)).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var requests []models.Request
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list active requests: %w", err)
		}

		var stored models.StoredRequest
		if err := doc.DataTo(&stored); err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable request", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		stored.ID = doc.Ref.ID
		requests = append(requests, models.FromStored(stored))
	}
	return requests, nil
}
