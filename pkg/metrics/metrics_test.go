package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 10*time.Millisecond)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("exec", time.Millisecond, nil)
	m.IncBookingOperation("create", ResultConflict)
	m.IncSlotCache(true)
	m.IncSlotCache(false)
	m.IncSlotCache(false)
	m.SetDBConnections(5, 2, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOperations.WithLabelValues("create", ResultConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotCacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotCacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("in_use")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.IncBookingOperation("create", ResultSuccess)
		m.IncSlotCache(true)
		m.SetDBConnections(1, 1, 0)
	})
}
