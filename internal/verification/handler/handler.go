package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bloodlink/internal/verification/models"
	dErrors "bloodlink/pkg/domain-errors"
	"bloodlink/pkg/platform/httputil"
	"bloodlink/pkg/requestcontext"
)

type Service interface {
	Resend(ctx context.Context, uid string) (*models.ResendResult, error)
	Cooldown(ctx context.Context, uid string) (*models.CooldownStatus, error)
	StartPolling(ctx context.Context, uid string) (*models.PollStatus, error)
	PollStatus(ctx context.Context, uid string) (*models.PollStatus, error)
	CheckNow(ctx context.Context, uid string) (bool, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the verification routes. They require an authenticated
// caller; mount them behind auth.RequireAuth.
func (h *Handler) Register(r chi.Router) {
	r.Route("/verification", func(r chi.Router) {
		r.Post("/resend", h.HandleResend)
		r.Get("/cooldown", h.HandleCooldown)
		r.Post("/poll", h.HandleStartPolling)
		r.Get("/poll", h.HandlePollStatus)
		r.Post("/check", h.HandleCheck)
	})
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := requestcontext.UserID(r.Context())
	if uid == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return uid, true
}

type throttledResponse struct {
	Error             string `json:"error"`
	ErrorDescription  string `json:"error_description"`
	RetryAfterSeconds int    `json:"retry_after"`
}

// HandleResend answers 202 when an email went out and 429 with Retry-After
// when the caller is still cooling down.
func (h *Handler) HandleResend(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.caller(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	result, err := h.service.Resend(ctx, uid)
	if err != nil {
		h.logger.WarnContext(ctx, "verification resend failed",
			"user_id", uid,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if !result.Sent {
		w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
		httputil.WriteJSON(w, http.StatusTooManyRequests, throttledResponse{
			Error:             string(dErrors.CodeRateLimited),
			ErrorDescription:  "please wait before requesting another verification email",
			RetryAfterSeconds: result.RetryAfterSeconds,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, result)
}

func (h *Handler) HandleCooldown(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.caller(w, r)
	if !ok {
		return
	}
	status, err := h.service.Cooldown(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

// HandleStartPolling starts polling for the caller, or reports the poller
// already running. 202 either way.
func (h *Handler) HandleStartPolling(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.caller(w, r)
	if !ok {
		return
	}
	status, err := h.service.StartPolling(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, status)
}

func (h *Handler) HandlePollStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.caller(w, r)
	if !ok {
		return
	}
	status, err := h.service.PollStatus(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

type checkResponse struct {
	Verified bool `json:"verified"`
}

func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.caller(w, r)
	if !ok {
		return
	}
	verified, err := h.service.CheckNow(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, checkResponse{Verified: verified})
}
