package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/locations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/locations/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/locations/42", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/locations/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordPointsCredited(t *testing.T) {
	before := testutil.ToFloat64(pointsCredited.WithLabelValues("test"))
	RecordPointsCredited("test", 5)
	RecordPointsCredited("test", 0)
	RecordPointsCredited("test", -3)
	assert.Equal(t, before+5, testutil.ToFloat64(pointsCredited.WithLabelValues("test")))
}

func TestRecordSuggestionTransition(t *testing.T) {
	before := testutil.ToFloat64(suggestionTransitions.WithLabelValues("approved", "true"))
	RecordSuggestionTransition("approved", true)
	assert.Equal(t, before+1, testutil.ToFloat64(suggestionTransitions.WithLabelValues("approved", "true")))
}

func TestHandler_Exposes(t *testing.T) {
	RecordSuggestionSubmitted()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dogspots_suggestions_submitted_total")
}
