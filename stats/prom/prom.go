// Package prom adapts the cache's lifecycle events onto Prometheus
// counters and gauges, reworked as a bus.Listener so it plugs into the
// event bus instead of a bespoke Metrics interface baked into the cache
// core.
package prom

import (
	"github.com/arrowlake/kvcache/bus"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements bus.Listener[K,V] and exports Hit/Miss/Insert/
// Update/Evict/Expire/Remove counters plus a live size gauge. Safe for
// concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter[K comparable, V any] struct {
	bus.BaseListener[K, V]

	hits    prometheus.Counter
	misses  prometheus.Counter
	inserts prometheus.Counter
	updates prometheus.Counter
	removes prometheus.Counter
	evicts  *prometheus.CounterVec
	size    prometheus.Gauge
}

// New constructs a Prometheus-backed listener.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New[K comparable, V any](reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter[K, V] {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter[K, V]{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "hits_total",
			Help: "Cache hits", ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "misses_total",
			Help: "Cache misses", ConstLabels: constLabels,
		}),
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "inserts_total",
			Help: "New keys inserted", ConstLabels: constLabels,
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "updates_total",
			Help: "Existing keys overwritten", ConstLabels: constLabels,
		}),
		removes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "removes_total",
			Help: "Explicit removals", ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns, Subsystem: sub, Name: "evictions_total",
				Help: "Cache removals by reason", ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_entries",
			Help: "Observed resident entries at the last lifecycle event", ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.inserts, a.updates, a.removes, a.evicts, a.size)
	return a
}

func (a *Adapter[K, V]) OnHit(K)  { a.hits.Inc() }
func (a *Adapter[K, V]) OnMiss(K) { a.misses.Inc() }

func (a *Adapter[K, V]) OnInsert(K, V) {
	a.inserts.Inc()
	a.size.Inc()
}
func (a *Adapter[K, V]) OnUpdate(K, V, V) { a.updates.Inc() }

func (a *Adapter[K, V]) OnEvict(K, V) {
	a.evicts.WithLabelValues("capacity").Inc()
	a.size.Dec()
}
func (a *Adapter[K, V]) OnExpire(K) {
	a.evicts.WithLabelValues("ttl").Inc()
	a.size.Dec()
}
func (a *Adapter[K, V]) OnRemove(K) {
	a.removes.Inc()
	a.size.Dec()
}

func (a *Adapter[K, V]) OnClear(count int) { a.size.Set(0) }

var _ bus.Listener[string, int] = (*Adapter[string, int])(nil)
