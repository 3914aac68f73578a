package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloodlink/internal/location"
	"bloodlink/internal/request/models"
	"bloodlink/pkg/domain"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/httputil"
	"bloodlink/pkg/requestcontext"
)

type Service interface {
	Summaries(ctx context.Context, order models.Order) (*models.GroupResult, error)
	Search(ctx context.Context, criteria models.Criteria) ([]models.Request, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/requests", h.HandleSearch)
	r.Get("/requests/summary", h.HandleSummary)
}

type searchResponse struct {
	Requests []models.Request `json:"requests"`
}

// HandleSearch lists active requests filtered by blood_group, urgency
// (either vocabulary) and location. blood_group accepts "A+" whether or
// not the plus is percent-encoded.
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
	if raw := q.Get("urgency"); raw != "" {
		urgency, err := domain.ParseUrgency(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid urgency"))
			return
		}
		criteria.Urgency = urgency
	}

	requests, err := h.service.Search(ctx, criteria)
	if err != nil {
		h.logger.ErrorContext(ctx, "request search failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, searchResponse{Requests: requests})
}

// HandleSummary rolls active requests up by blood group. order is
// first_seen (default) or reference.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, ok := models.ParseOrder(r.URL.Query().Get("order"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "order must be first_seen or reference"))
		return
	}

	result, err := h.service.Summaries(ctx, order)
	if err != nil {
		h.logger.ErrorContext(ctx, "request summary failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
