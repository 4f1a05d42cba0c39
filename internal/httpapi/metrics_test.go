package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TestMetricsMiddleware_UsesRoutePattern ensures requests routed through the
// mux are counted under their chi route pattern.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	h := NewMux(&mockService{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/checkpoints/latest", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte("reinforce_http_requests_total")) || !bytes.Contains(body, []byte("/checkpoints/latest")) {
		preview := body
		if len(preview) > 400 {
			preview = preview[:400]
		}
		t.Fatalf("expected reinforce_http_requests_total with '/checkpoints/latest'; got: %q", string(preview))
	}
}

func TestGauges(t *testing.T) {
	SetAcceleratorMemory(80 << 30)
	observeCheckpoints(3, 42)

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mrr.Body.Bytes()
	for _, want := range []string{"reinforce_accelerator_memory_bytes", "reinforce_checkpoint_latest_step 42", "reinforce_checkpoint_count 3"} {
		if !bytes.Contains(body, []byte(want)) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}
