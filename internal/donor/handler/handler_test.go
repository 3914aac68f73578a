package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"bloodlink/internal/donor/models"
	"bloodlink/internal/donor/service"
	"bloodlink/internal/donor/store/memory"
	"bloodlink/pkg/domain"
	"bloodlink/pkg/requestcontext"
)

// HandlerSuite exercises the donor routes over real in-memory components.
type HandlerSuite struct {
	suite.Suite
	store  *memory.InMemoryDonorStore
	router http.Handler
	now    time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = memory.New()
	s.store.AddQuickUser(models.QuickUser{ID: "q1", Name: "Quick", BloodGroup: "O+", Location: "Savar, Dhaka, Dhaka Division"})
	s.store.PutUser(models.RegisteredUser{
		ID:           "r1",
		FullName:     "Registered",
		Role:         "donor",
		BloodGroup:   "A-",
		Location:     "Sylhet Sadar, Sylhet, Sylhet Division",
		LastDonation: s.now.AddDate(0, 0, -70),
		CreatedAt:    s.now,
	})
	s.store.PutUser(models.RegisteredUser{
		ID:         "me",
		FullName:   "Me",
		Role:       "donor",
		BloodGroup: "B+",
		Location:   "Teknaf, Cox's Bazar, Chattogram Division",
		CreatedAt:  s.now.Add(-time.Hour),
	})

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := service.New(s.store, service.WithLogger(logger), service.WithUserStore(s.store))
	s.Require().NoError(err)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), s.now)))
		})
	})
	New(svc, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) get(ctx context.Context, target string) (*httptest.ResponseRecorder, searchResponse) {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body searchResponse
	if rec.Code == http.StatusOK {
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func (s *HandlerSuite) TestSearch_Anonymous() {
	rec, body := s.get(context.Background(), "/donors")
	s.Equal(http.StatusOK, rec.Code)
	s.Len(body.Donors, 3)
	s.Equal("q1", body.Donors[0].ID)
	s.Equal("ready", string(body.Donors[0].Badge))
}

func (s *HandlerSuite) TestSearch_Filters() {
	rec, body := s.get(context.Background(), "/donors?blood_group=a-&division=sylhet")
	s.Equal(http.StatusOK, rec.Code)
	s.Require().Len(body.Donors, 1)
	s.Equal("r1", body.Donors[0].ID)
	s.True(body.Donors[0].Eligibility.IsEligible)
	s.Equal("available_soon", string(body.Donors[0].Badge))
}

func (s *HandlerSuite) TestSearch_UnescapedPlusInBloodGroup() {
	rec, body := s.get(context.Background(), "/donors?blood_group=O+")
	s.Equal(http.StatusOK, rec.Code)
	s.Require().Len(body.Donors, 1)
	s.Equal("q1", body.Donors[0].ID)
}

func (s *HandlerSuite) TestSearch_InvalidBloodGroup() {
	rec, _ := s.get(context.Background(), "/donors?blood_group=Z")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSearch_EmptyMatchIsNotAnError() {
	rec, body := s.get(context.Background(), "/donors?division=Rangpur")
	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(body.Donors)
	s.Empty(body.Donors)
}

func (s *HandlerSuite) TestSearch_CurrentUserAlwaysListedOnce() {
	ctx := requestcontext.WithIdentity(context.Background(), requestcontext.Identity{
		UserID: "me",
		Role:   domain.RoleDonor,
	})

	rec, body := s.get(ctx, "/donors?division=Dhaka")
	s.Equal(http.StatusOK, rec.Code)
	s.Require().Len(body.Donors, 2)
	s.Equal("q1", body.Donors[0].ID)
	s.Equal("me", body.Donors[1].ID)
	s.Equal(models.SourceCurrentUser, body.Donors[1].Source)
	s.Equal(domain.BloodGroupBPos, body.Donors[1].BloodGroup)
}
