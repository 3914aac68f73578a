package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"bloodlink/internal/request/models"
	"bloodlink/internal/request/service"
	"bloodlink/internal/request/store/memory"
	"bloodlink/pkg/domain"
)

type failingStore struct{}

func (failingStore) ListActiveRequests(context.Context) ([]models.Request, error) {
	return nil, errors.New("firestore unavailable")
}

type HandlerSuite struct {
	suite.Suite
	logger *slog.Logger
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	base := time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC)
	store := memory.New()
	store.Add(models.StoredRequest{ID: "1", BloodGroup: "O-", Quantity: 2, Urgency: "urgent", Location: "Ramna, Dhaka, Dhaka Division", Status: "active", CreatedAt: base.Add(3 * time.Hour)})
	store.Add(models.StoredRequest{ID: "2", BloodGroup: "O-", Quantity: 3, Urgency: "Critical", Location: "Savar, Dhaka, Dhaka Division", Status: "active", CreatedAt: base.Add(2 * time.Hour)})
	store.Add(models.StoredRequest{ID: "3", BloodGroup: "A+", Quantity: 1, Urgency: "normal", Location: "Sylhet Sadar, Sylhet, Sylhet Division", Status: "active", CreatedAt: base.Add(time.Hour)})

	s.logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.router = s.routerFor(store)
}

func (s *HandlerSuite) routerFor(store service.Store) http.Handler {
	svc, err := service.New(store, service.WithLogger(s.logger))
	s.Require().NoError(err)
	r := chi.NewRouter()
	New(svc, s.logger).Register(r)
	return r
}

func (s *HandlerSuite) do(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (s *HandlerSuite) TestSummary_FirstSeen() {
	rec := s.do(s.router, "/requests/summary")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body models.GroupResult
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Equal([]models.Summary{
		{BloodGroup: domain.BloodGroupONeg, TotalUnits: 5, RequestCount: 2, Urgency: domain.UrgencyCritical},
		{BloodGroup: domain.BloodGroupAPos, TotalUnits: 1, RequestCount: 1, Urgency: domain.UrgencyModerate},
	}, body.Summaries)
}

func (s *HandlerSuite) TestSummary_ReferenceOrder() {
	rec := s.do(s.router, "/requests/summary?order=reference")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body models.GroupResult
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Require().Len(body.Summaries, 2)
	s.Equal(domain.BloodGroupAPos, body.Summaries[0].BloodGroup)
}

func (s *HandlerSuite) TestSummary_InvalidOrder() {
	s.Equal(http.StatusBadRequest, s.do(s.router, "/requests/summary?order=random").Code)
}

func (s *HandlerSuite) TestSearch_UrgencyVocabularies() {
	for _, urgency := range []string{"emergency", "Critical"} {
		rec := s.do(s.router, "/requests?urgency="+urgency)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body searchResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Require().Len(body.Requests, 1, urgency)
		s.Equal("2", body.Requests[0].ID)
	}
}

func (s *HandlerSuite) TestSearch_Location() {
	rec := s.do(s.router, "/requests?division=Dhaka&blood_group=O-")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body searchResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Len(body.Requests, 2)
}

func (s *HandlerSuite) TestSearch_UnescapedPlusInBloodGroup() {
	for _, target := range []string{"/requests?blood_group=A+", "/requests?blood_group=A%2B"} {
		rec := s.do(s.router, target)
		s.Require().Equal(http.StatusOK, rec.Code, target)

		var body searchResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Require().Len(body.Requests, 1, target)
		s.Equal("3", body.Requests[0].ID)
	}
}

func (s *HandlerSuite) TestSearch_InvalidInput() {
	s.Equal(http.StatusBadRequest, s.do(s.router, "/requests?urgency=whenever").Code)
	s.Equal(http.StatusBadRequest, s.do(s.router, "/requests?blood_group=Q+").Code)
}

func (s *HandlerSuite) TestStoreFailureIsUnavailable() {
	router := s.routerFor(failingStore{})
	s.Equal(http.StatusServiceUnavailable, s.do(router, "/requests").Code)
	s.Equal(http.StatusServiceUnavailable, s.do(router, "/requests/summary").Code)
}
