package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /contract/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	h := Middleware(mux)

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "GET /contract/status", "202"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contract/status", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "GET /contract/status", "202"))
	assert.Equal(t, before+1, after)
}

func TestMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, before, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200")))
}

func TestRouteLabel_CollapsesUUIDs(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/staging/0b6f1c3e-8a52-4c1e-9d7b-2f1f4b8b9c10/file", nil)
	assert.Equal(t, "/staging/{id}/file", routeLabel(r))
}

func TestAnalysisCompleted(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("completed"))
	AnalysisCompleted("rental", 80, 0)
	assert.Equal(t, before+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("completed")))
}
