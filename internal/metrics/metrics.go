// Package metrics republishes engine statistics snapshots as Prometheus
// metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/constella/constella/search"
)

// Collector holds the gauges fed from search.Stats snapshots. It owns its
// registry so the driver can mount the handler on any mux.
type Collector struct {
	registry *prometheus.Registry

	primeTableSize      prometheus.Gauge
	candidatesGenerated prometheus.Gauge
	candidatesTested    prometheus.Gauge
	sievingSeconds      prometheus.Gauge
	testingSeconds      prometheus.Gauge
	tupleCounts         *prometheus.GaugeVec
}

func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}
	c.primeTableSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "constella", Name: "prime_table_size",
		Help: "Number of primes in the sieve table.",
	})
	c.candidatesGenerated = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "constella", Name: "candidates_generated",
		Help: "Candidates that survived sieving and were queued for testing.",
	})
	c.candidatesTested = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "constella", Name: "candidates_tested",
		Help: "Candidates whose Fermat chain was run.",
	})
	c.sievingSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "constella", Name: "sieving_cpu_seconds",
		Help: "CPU seconds spent sieving, summed over workers.",
	})
	c.testingSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "constella", Name: "testing_cpu_seconds",
		Help: "CPU seconds spent on primality testing, summed over workers.",
	})
	c.tupleCounts = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "constella", Name: "tuples",
		Help: "Candidates reaching each chain length.",
	}, []string{"length"})
	c.registry.MustRegister(c.primeTableSize, c.candidatesGenerated,
		c.candidatesTested, c.sievingSeconds, c.testingSeconds, c.tupleCounts)
	return c
}

// Update publishes one stats snapshot.
func (c *Collector) Update(stats search.Stats) {
	c.primeTableSize.Set(float64(stats.PrimeTableSize))
	c.candidatesGenerated.Set(float64(stats.CandidatesGenerated))
	c.candidatesTested.Set(float64(stats.CandidatesTested))
	c.sievingSeconds.Set(stats.SievingDuration)
	c.testingSeconds.Set(stats.TestingDuration)
	for k, n := range stats.TupleCounts {
		c.tupleCounts.WithLabelValues(strconv.Itoa(k)).Set(float64(n))
	}
}

// Handler returns the HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
