package accounts

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	hits    *prometheus.CounterVec
	misses  *prometheus.CounterVec
	fetched *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with registerer
// when one is given.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glamgo_account_cache_hits_total",
			Help: "Addresses served from the account cache.",
		}, []string{"cache"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glamgo_account_cache_misses_total",
			Help: "Addresses not present in the account cache when requested.",
		}, []string{"cache"}),
		fetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glamgo_account_cache_fetched_total",
			Help: "Addresses requested from the upstream fetcher.",
		}, []string{"cache"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.hits, m.misses, m.fetched)
	}
	return m
}

func (m *Metrics) observe(cache string, hits int, misses int, fetched int) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(cache).Add(float64(hits))
	m.misses.WithLabelValues(cache).Add(float64(misses))
	m.fetched.WithLabelValues(cache).Add(float64(fetched))
}
