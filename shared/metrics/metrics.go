package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "micelio"

// Outcome labels for booking mutations.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

// BookingMetrics counts booking mutations and storage failures.
type BookingMetrics struct {
	mutations       *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	subscribers     prometheus.Gauge
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "mutations_total",
			Help:      "Booking create/update/delete attempts by outcome",
		}, []string{"operation", "outcome"}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "storage_failures_total",
			Help:      "Snapshot load/save failures swallowed by the store",
		}, []string{"operation"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "subscribers",
			Help:      "Active booking change subscribers",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.mutations, m.storageFailures, m.subscribers)

	return m
}

func (m *BookingMetrics) ObserveMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

func (m *BookingMetrics) ObserveStorageFailure(operation string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(operation).Inc()
}

func (m *BookingMetrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.subscribers.Set(float64(n))
}

// New registers the booking metrics on the default registerer. Wire calls it once.
func New() *BookingMetrics {
	return NewBookingMetrics(nil)
}
