package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodlink/internal/donor/models"
	"bloodlink/pkg/domain"
	"bloodlink/pkg/platform/sentinel"
)

const (
	QuickUsersCollection = "quickUsers"
	UsersCollection      = "users"

	registeredDonorLimit = 50
)

// FirestoreDonorStore reads donors from the quickUsers and users collections.
// Documents that fail to decode are skipped and logged rather than failing
// the whole listing.
type FirestoreDonorStore struct {
	client *firestore.Client
	logger *slog.Logger
}

func New(client *firestore.Client, logger *slog.Logger) *FirestoreDonorStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FirestoreDonorStore{client: client, logger: logger}
}

func (s *FirestoreDonorStore) ListQuickDonors(ctx context.Context) ([]models.Donor, error) {
	iter := s.client.Collection(QuickUsersCollection).
		OrderBy("registeredAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var donors []models.Donor
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list quick donors: %w", err)
		}

		var u models.QuickUser
		if err := doc.DataTo(&u); err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable quick user", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		u.ID = doc.Ref.ID
		donors = append(donors, models.FromQuickUser(u))
	}
	return donors, nil
}

// ListRegisteredDonors returns the newest accounts with the donor role.
func (s *FirestoreDonorStore) ListRegisteredDonors(ctx context.Context) ([]models.Donor, error) {
	iter := s.client.Collection(UsersCollection).
		Where("role", "==", string(domain.RoleDonor)).
		OrderBy("createdAt", firestore.Desc).
		Limit(registeredDonorLimit).
		Documents(ctx)
	defer iter.Stop()

	var donors []models.Donor
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list registered donors: %w", err)
		}

		u, err := decodeUser(doc)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable user", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		donors = append(donors, models.FromRegisteredUser(*u))
	}
	return donors, nil
}

func (s *FirestoreDonorStore) GetUser(ctx context.Context, id string) (*models.RegisteredUser, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return decodeUser(doc)
}

func decodeUser(doc *firestore.DocumentSnapshot) (*models.RegisteredUser, error) {
	var u models.RegisteredUser
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", doc.Ref.ID, err)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}
