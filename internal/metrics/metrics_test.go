package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSettlement(t *testing.T) {
	m := New(nil)

	m.ObserveSettlement(OutcomeOK, 3, 2)
	m.ObserveSettlement(OutcomeOK, 2, 1)
	m.ObserveSettlement(OutcomeNoParticipants, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Settlements.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Settlements.WithLabelValues(OutcomeNoParticipants)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Settlements))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveSettlement(OutcomeOK, 1, 0) })
}

func TestHandlerExposesRosterGauge(t *testing.T) {
	m := New(func() int { return 4 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "equalsplit_active_rosters 4"), "body: %s", body)
}
