package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/eligibility"
	"bloodlink/pkg/requestcontext"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	New().Register(r)

	req := httptest.NewRequest(http.MethodPost, "/eligibility", strings.NewReader(body))
	req = req.WithContext(requestcontext.WithTime(req.Context(), now))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantEligible  bool
		wantUntil     int
		wantBadge     eligibility.Badge
	}{
		{
			name:         "never donated",
			body:         `{"last_donation": null}`,
			wantEligible: true,
			wantBadge:    eligibility.BadgeReady,
		},
		{
			name:      "donated ten days ago",
			body:      `{"last_donation": "2024-05-22"}`,
			wantUntil: 46,
			wantBadge: eligibility.BadgeRecent,
		},
		{
			name:         "timestamp object ninety days ago",
			body:         `{"last_donation": {"seconds": ` + jsonInt(now.AddDate(0, 0, -90).Unix()) + `, "nanoseconds": 0}}`,
			wantEligible: true,
			wantBadge:    eligibility.BadgeAvailableSoon,
		},
		{
			name:         "unreadable date is never donated",
			body:         `{"last_donation": "someday"}`,
			wantEligible: true,
			wantBadge:    eligibility.BadgeReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var got evaluateResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantEligible, got.IsEligible)
			assert.Equal(t, tt.wantUntil, got.DaysUntilEligible)
			assert.Equal(t, tt.wantBadge, got.Badge)
		})
	}
}

func TestHandleEvaluate_BadJSON(t *testing.T) {
	rec := post(t, `{"last_donation":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
