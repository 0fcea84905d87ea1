package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках вызовы ничего не делают.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	slotCalculations *prometheus.CounterVec
	bookingAttempts  *prometheus.CounterVec
	cacheOperations  *prometheus.CounterVec

	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge
	dbWaitCount        prometheus.Gauge
	dbWaitDuration     prometheus.Gauge
}

// New регистрирует метрики в reg. Если reg == nil, используется prometheus.DefaultRegisterer.
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		slotCalculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slot_calculations_total",
			Help:        "Slot lists served, by source (engine or cache)",
			ConstLabels: labels,
		}, []string{"source"}),
		bookingAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking commit attempts by outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),
		cacheOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_operations_total",
			Help:        "Slot cache operations by result",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections in the pool", ConstLabels: labels,
		}),
		dbInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections currently in use", ConstLabels: labels,
		}),
		dbIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections", ConstLabels: labels,
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total number of connections waited for", ConstLabels: labels,
		}),
		dbWaitDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds", Help: "Total time blocked waiting for a connection", ConstLabels: labels,
		}),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncSlotCalculation source: "engine" или "cache"
func (m *Metrics) IncSlotCalculation(source string) {
	if m == nil {
		return
	}
	m.slotCalculations.WithLabelValues(source).Inc()
}

// IncBookingAttempt operation: "create" | "reschedule", outcome: "committed" | "conflict" | "error"
func (m *Metrics) IncBookingAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingAttempts.WithLabelValues(operation, outcome).Inc()
}

// IncCacheOperation result: "hit" | "miss" | "error" | "ok"
func (m *Metrics) IncCacheOperation(operation, result string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
	m.dbWaitDuration.Set(waitDuration.Seconds())
}
