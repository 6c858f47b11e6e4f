package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndInflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	// Parametrized route: the label must be the pattern, not the raw URL.
	r.GET("/api/v1/documents/:id", func(c *gin.Context) {
		c.String(http.StatusOK, `{"id":%q}`, c.Param("id"))
	})

	// 204 with no body leaves the writer size at -1, which must be skipped by
	// the size histogram without panicking.
	r.DELETE("/api/v1/documents/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	const routeLabel = "/api/v1/documents/:id"
	baseGet := testutil.ToFloat64(httpReqs.WithLabelValues("GET", routeLabel, "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/v1/batches/b-1", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-7", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET document -> %d", w.Code)
	}

	// Unmatched route falls back to the raw URL as the path label.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/batches/b-1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET unmatched -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/documents/doc-7", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE document -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", routeLabel, "200")); got != baseGet+1 {
		t.Fatalf("counter for %s = %v; want %v", routeLabel, got, baseGet+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/v1/batches/b-1", "404")); got != base404+1 {
		t.Fatalf("404 fallback counter = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0 after completion", inFlight)
	}
}
