package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloodlink/internal/eligibility"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/httputil"
	"bloodlink/pkg/requestcontext"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/eligibility", h.HandleEvaluate)
}

// evaluateRequest accepts last_donation in any stored shape: an ISO date,
// an RFC 3339 timestamp, a {seconds, nanoseconds} object or null.
type evaluateRequest struct {
	LastDonation any `json:"last_donation"`
}

type evaluateResponse struct {
	eligibility.State
	Badge eligibility.Badge `json:"badge"`
}

func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	now := requestcontext.Now(r.Context())
	last := eligibility.ParseLastDonation(req.LastDonation)
	httputil.WriteJSON(w, http.StatusOK, evaluateResponse{
		State: eligibility.Evaluate(last, now),
		Badge: eligibility.Status(last, now),
	})
}
