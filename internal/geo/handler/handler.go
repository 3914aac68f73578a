package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloodlink/internal/geo"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/httputil"
)

// Handler serves the Division → District → Sub-district reference data.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/geo/divisions", func(r chi.Router) {
		r.Get("/", h.HandleDivisions)
		r.Get("/{division}/districts", h.HandleDistricts)
		r.Get("/{division}/districts/{district}/sub-districts", h.HandleSubDistricts)
	})
}

type namesResponse struct {
	Names []string `json:"names"`
}

func (h *Handler) HandleDivisions(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, namesResponse{Names: geo.Divisions()})
}

func (h *Handler) HandleDistricts(w http.ResponseWriter, r *http.Request) {
	names, ok := geo.Districts(chi.URLParam(r, "division"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown division"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, namesResponse{Names: names})
}

func (h *Handler) HandleSubDistricts(w http.ResponseWriter, r *http.Request) {
	names, ok := geo.SubDistricts(chi.URLParam(r, "division"), chi.URLParam(r, "district"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown division or district"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, namesResponse{Names: names})
}
