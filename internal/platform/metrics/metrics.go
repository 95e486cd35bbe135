package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Services accept
// a nil *Metrics; every recording method is nil-safe so tests can skip
// registration entirely.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          *prometheus.CounterVec
	ItemMutations   *prometheus.CounterVec
	SharingEdges    *prometheus.CounterVec
	StorageFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boardkeep_users_registered_total",
			Help: "Total number of registered identities.",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boardkeep_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		ItemMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boardkeep_item_mutations_total",
			Help: "Item mutations by operation.",
		}, []string{"op"}),
		SharingEdges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boardkeep_sharing_edges_total",
			Help: "Sharing edge changes by direction.",
		}, []string{"direction"}),
		StorageFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boardkeep_storage_failures_total",
			Help: "Persistence gateway failures observed by services.",
		}),
	}
}

func (m *Metrics) RecordUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordItemMutation(op string) {
	if m == nil {
		return
	}
	m.ItemMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) RecordSharingEdge(direction string) {
	if m == nil {
		return
	}
	m.SharingEdges.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordStorageFailure() {
	if m == nil {
		return
	}
	m.StorageFailures.Inc()
}
