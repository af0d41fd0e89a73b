package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("cleaning", reg)

	m.RecordHTTPRequest("GET", "/api/v1/bookings/{bookingId}", 200, 10*time.Millisecond)
	m.RecordDBQuery("query_row", time.Millisecond, errors.New("boom"))
	m.RecordBookingTransition("confirmed")
	m.RecordBookingTransition("confirmed")
	m.RecordAssignmentConflict("slot_taken")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("cleaning", "GET", "/api/v1/bookings/{bookingId}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("cleaning", "query_row")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingTransitions.WithLabelValues("cleaning", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignmentConflicts.WithLabelValues("cleaning", "slot_taken")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordDBQuery("exec", time.Millisecond, nil)
		m.SetDBConnections(1, 1, 0)
		m.RecordBookingTransition("failed")
		m.RecordAssignmentConflict("overlap")
		m.RecordPromotionRedeemed("percentage")
	})
}
