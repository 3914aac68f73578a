package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bloodlink/internal/donor/models"
	"bloodlink/internal/eligibility"
	"bloodlink/internal/location"
	"bloodlink/pkg/domain"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/httputil"
	"bloodlink/pkg/requestcontext"
)

// Service is the donor search surface the handler depends on.
type Service interface {
	Search(ctx context.Context, criteria models.Criteria, current *models.CurrentUser) *models.SearchResult
	ResolveCurrentUser(ctx context.Context, base models.CurrentUser) models.CurrentUser
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the donor routes. Authentication is optional; when present
// the caller is excluded from stored results and listed once if eligible.
func (h *Handler) Register(r chi.Router) {
	r.Get("/donors", h.HandleSearch)
}

type donorResponse struct {
	models.Donor
	Eligibility eligibility.State `json:"eligibility"`
	Badge       eligibility.Badge `json:"badge"`
}

type searchResponse struct {
	Donors        []donorResponse     `json:"donors"`
	SkippedCount  int                 `json:"skipped_count"`
	FailedSources []models.SourceKind `json:"failed_sources,omitempty"`
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	criteria := models.Criteria{
		Location: location.Filter{
			Division:    q.Get("division"),
			District:    q.Get("district"),
			SubDistrict: q.Get("sub_district"),
		},
	}
	if raw := q.Get("blood_group"); raw != "" {
		group, err := domain.ParseBloodGroupQuery(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid blood_group"))
			return
		}
		criteria.BloodGroup = group
	}

	var current *models.CurrentUser
	if identity, ok := requestcontext.IdentityFrom(ctx); ok {
		resolved := h.service.ResolveCurrentUser(ctx, models.CurrentUser{
			ID:           identity.UserID,
			Role:         identity.Role,
			BloodGroup:   identity.BloodGroup,
			LastDonation: identity.LastDonation,
			Location:     identity.Location,
		})
		current = &resolved
	}

	result := h.service.Search(ctx, criteria, current)
	if len(result.FailedSources) > 0 {
		h.logger.WarnContext(ctx, "donor search served partial results",
			"failed_sources", result.FailedSources,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, toSearchResponse(result, requestcontext.Now(ctx)))
}

func toSearchResponse(result *models.SearchResult, now time.Time) searchResponse {
	resp := searchResponse{
		Donors:        make([]donorResponse, 0, len(result.Donors)),
		SkippedCount:  result.SkippedCount,
		FailedSources: result.FailedSources,
	}
	for _, d := range result.Donors {
		resp.Donors = append(resp.Donors, donorResponse{
			Donor:       d,
			Eligibility: eligibility.Evaluate(d.LastDonation, now),
			Badge:       eligibility.Status(d.LastDonation, now),
		})
	}
	return resp
}
