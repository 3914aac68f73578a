package main

import (
	"context"
	"net/http"
	"time"

	"bloodlink/pkg/platform/httputil"
)

const healthTimeout = 2 * time.Second

// healthChecks probes the backends the server was started with.
type healthChecks map[string]func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h healthChecks) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h) > 0 {
		resp.Checks = make(map[string]string, len(h))
	}
	for name, check := range h {
		if err := check(ctx); err != nil {
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
