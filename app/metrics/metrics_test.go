package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	SweepRunsTotal.WithLabelValues("ok").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(SweepRunsTotal.WithLabelValues("ok")), 1.0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "unipath_sweep_runs_total")
}
