package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Singleton(t *testing.T) {
	assert.Same(t, NewMetrics(), NewMetrics())
}

func TestRecordLedgerOp(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(m.LedgerOpsTotal.WithLabelValues("register", "ok"))
	m.RecordLedgerOp("register", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(m.LedgerOpsTotal.WithLabelValues("register", "ok")))
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	NewMetrics().RecordCacheLookup("FEATURED_SPEAKER", "miss")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "conference_cache_lookups_total")
}
