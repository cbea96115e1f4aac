package observability

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops-engine/internal/domain"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics("")
	b := NewMetrics("")

	a.RecordCacheHit()

	assert.Contains(t, scrape(t, a), "revops_cache_hits_total 1")
	assert.Contains(t, scrape(t, b), "revops_cache_hits_total 0")
}

func TestMetrics_RecordCalculation(t *testing.T) {
	m := NewMetrics("test")
	m.RecordCalculation("calculate", 2*time.Millisecond)
	m.RecordCalculation("calculate", time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `test_engine_calculations_total{operation="calculate"} 2`)
	assert.Contains(t, body, `test_engine_calculation_duration_seconds_count{operation="calculate"} 2`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordCacheHit()
	m.RecordCacheMiss(3)
	m.RecordCalculation("x", time.Second)
	m.RecordValidationFailure(domain.ErrNonPositive)
	m.SetScenariosStored(1)
	m.RecordHTTPRequest("/", "200")
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("channel %q: %w", "x", domain.ErrMissingPrice), "missing_price"},
		{fmt.Errorf("deal economics: %w: grr", domain.ErrRateOutOfRange), "rate_out_of_range"},
		{domain.ErrDuplicateChannel, "duplicate_channel"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tt := range tests {
		if got := FailureKind(tt.err); got != tt.want {
			t.Errorf("FailureKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHandler_ExposesNamespace(t *testing.T) {
	m := NewMetrics("revops")
	m.RecordValidationFailure(domain.ErrNegativeAmount)
	m.SetScenariosStored(3)

	body := scrape(t, m)
	assert.True(t, strings.Contains(body, `revops_engine_validation_failures_total{kind="negative_amount"} 1`), body)
	assert.Contains(t, body, "revops_scenarios_stored 3")
	assert.Contains(t, body, "go_goroutines")
}
