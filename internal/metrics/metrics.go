// Package metrics exposes wardrobe and HTTP metrics for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// Collector records wardrobe changes, journal failures and HTTP traffic.
type Collector struct {
	items           prometheus.Gauge
	outfits         prometheus.Gauge
	version         prometheus.Gauge
	changes         *prometheus.CounterVec
	journalFailures prometheus.Counter
	httpStatus      *prometheus.CounterVec
	httpLatency     prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "garderoba_items",
			Help: "Number of clothing items in the wardrobe.",
		}),
		outfits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "garderoba_outfits",
			Help: "Number of outfits in the wardrobe.",
		}),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "garderoba_store_version",
			Help: "Version of the last committed wardrobe change.",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "garderoba_changes_total",
			Help: "Committed wardrobe changes by kind.",
		}, []string{"kind"}),
		journalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "garderoba_journal_failures_total",
			Help: "Changes that could not be written to the database.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "garderoba_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "garderoba_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.items,
		c.outfits,
		c.version,
		c.changes,
		c.journalFailures,
		c.httpStatus,
		c.httpLatency,
	)

	return c
}

// SetCounts sets the item and outfit gauges, e.g. after a restore.
func (c *Collector) SetCounts(items, outfits int) {
	c.items.Set(float64(items))
	c.outfits.Set(float64(outfits))
}

// ObserveChange records a committed change. It is meant to be passed to
// wardrobe.Store.Subscribe.
func (c *Collector) ObserveChange(ch wardrobe.Change) {
	c.changes.WithLabelValues(string(ch.Kind)).Inc()
	c.version.Set(float64(ch.Version))
	c.SetCounts(ch.ItemCount, ch.OutfitCount)
}

// RecordJournalFailure counts a change the journal failed to persist.
func (c *Collector) RecordJournalFailure() {
	c.journalFailures.Inc()
}

// RecordHTTPRequest records the status and latency of one request.
func (c *Collector) RecordHTTPRequest(statusCode int, duration time.Duration) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
