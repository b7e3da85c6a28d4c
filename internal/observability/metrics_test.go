package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics("storefront")

	m.RecordCartMutation("add", "applied")
	m.RecordCartMutation("add", "noop")
	m.RecordCartMutation("add", "noop")
	m.RecordSessionConflict()
	m.RecordTokenFailure("user", "expired")
	m.RecordResolution("admin")
	m.RecordRequest("/api/cart/add/:product_id", "POST", 200, 5*time.Millisecond)
	m.RecordError("/api/cart/add/:product_id", "POST", "FORBIDDEN")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add", "applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("add", "noop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokenFailures.WithLabelValues("user", "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/api/cart/add/:product_id", "POST", "FORBIDDEN")))
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics("storefront")
	m.RecordSessionConflict()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "storefront_session_conflicts_total 1")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCartMutation("add", "applied")
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordResolution("user")
		m.RecordSessionConflict()
		m.RecordTokenFailure("admin", "missing")
	})
	assert.Nil(t, m.Registry())
}
