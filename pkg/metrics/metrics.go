package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы Record* безопасны для nil-получателя: при выключенных метриках просто ничего не делают
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	bookingTransitions  *prometheus.CounterVec
	assignmentConflicts *prometheus.CounterVec
	promotionsRedeemed  *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в глобальном реестре (используется promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создаёт метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Booking lifecycle transitions by target status",
		}, []string{"service", "status"}),
		assignmentConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_assignment_conflicts_total",
			Help: "Rejected contractor/slot assignments",
		}, []string{"service", "reason"}),
		promotionsRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promotions_redeemed_total",
			Help: "Successfully applied promotions by discount type",
		}, []string{"service", "discount_type"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.bookingTransitions,
		m.assignmentConflicts,
		m.promotionsRedeemed,
	)

	return m
}

// RecordHTTPRequest учитывает HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// RecordDBQuery учитывает запрос к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.service, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.service, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.service, "idle").Set(float64(idle))
}

// RecordBookingTransition учитывает переход бронирования в статус
func (m *Metrics) RecordBookingTransition(status string) {
	if m == nil {
		return
	}
	m.bookingTransitions.WithLabelValues(m.service, status).Inc()
}

// RecordAssignmentConflict учитывает отклонённое назначение исполнителя/слота
func (m *Metrics) RecordAssignmentConflict(reason string) {
	if m == nil {
		return
	}
	m.assignmentConflicts.WithLabelValues(m.service, reason).Inc()
}

// RecordPromotionRedeemed учитывает применённый промокод
func (m *Metrics) RecordPromotionRedeemed(discountType string) {
	if m == nil {
		return
	}
	m.promotionsRedeemed.WithLabelValues(m.service, discountType).Inc()
}
