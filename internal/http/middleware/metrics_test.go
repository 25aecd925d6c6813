package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndPathLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	// Writes a body, so the size histogram records it.
	r.POST("/chat", func(c *gin.Context) {
		c.String(http.StatusOK, `{"response":"ok"}`)
	})
	// 204 with no body leaves the writer size at -1, which must be skipped.
	r.POST("/checkin", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	baseChat := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/chat", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /chat -> %d", w.Code)
	}

	// Unmatched route: the raw URL becomes the path label.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /does-not-exist -> %d", w.Code)
	}

	// Exercises the size == -1 skip branch.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkin", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("POST /checkin -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/chat", "200")); got != baseChat+1 {
		t.Fatalf("chat counter = %v; want %v", got, baseChat+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404")); got != base404+1 {
		t.Fatalf("404 fallback counter = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0 after requests complete", inFlight)
	}
}

func TestMetrics_DomainCounters(t *testing.T) {
	baseCrisis := testutil.ToFloat64(CrisisDetections)
	baseCheckin := testutil.ToFloat64(CheckinsRecorded)

	CrisisDetections.Inc()
	CheckinsRecorded.Inc()

	if got := testutil.ToFloat64(CrisisDetections); got != baseCrisis+1 {
		t.Fatalf("CrisisDetections = %v; want %v", got, baseCrisis+1)
	}
	if got := testutil.ToFloat64(CheckinsRecorded); got != baseCheckin+1 {
		t.Fatalf("CheckinsRecorded = %v; want %v", got, baseCheckin+1)
	}
}
