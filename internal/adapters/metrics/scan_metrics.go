package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/evetrade/internal/domain/trading"
)

// ScanCollector records arbitrage scan and snapshot refresh outcomes
type ScanCollector struct {
	scansTotal         prometheus.Counter
	scanDuration       prometheus.Histogram
	opportunitiesFound prometheus.Counter
	pairsSkipped       *prometheus.CounterVec
	refreshesTotal     *prometheus.CounterVec
}

// NewScanCollector creates a new scan metrics collector
func NewScanCollector() *ScanCollector {
	return &ScanCollector{
		scansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Total number of arbitrage scans executed",
		}),

		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Arbitrage scan duration distribution",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		}),

		opportunitiesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "opportunities_found_total",
			Help:      "Total number of profitable opportunities reported",
		}),

		pairsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_skipped_total",
			Help:      "Total number of pair/item evaluations skipped by reason",
		}, []string{"reason"}),

		refreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refreshes_total",
			Help:      "Total number of snapshot refreshes by outcome",
		}, []string{"outcome"}),
	}
}

// Register registers all scan metrics with the Prometheus registry
func (c *ScanCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.scansTotal,
		c.scanDuration,
		c.opportunitiesFound,
		c.pairsSkipped,
		c.refreshesTotal,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordScan records one completed scan
func (c *ScanCollector) RecordScan(duration time.Duration, found int, skipped trading.SkipCounters) {
	c.scansTotal.Inc()
	c.scanDuration.Observe(duration.Seconds())
	c.opportunitiesFound.Add(float64(found))

	c.pairsSkipped.WithLabelValues("same_region").Add(float64(skipped.SameRegionPairs))
	c.pairsSkipped.WithLabelValues("unreachable").Add(float64(skipped.UnreachablePairs))
	c.pairsSkipped.WithLabelValues("missing_quotes").Add(float64(skipped.MissingQuotes))
	c.pairsSkipped.WithLabelValues("no_spread").Add(float64(skipped.NoSpread))
	c.pairsSkipped.WithLabelValues("zero_quantity").Add(float64(skipped.ZeroQuantity))
	c.pairsSkipped.WithLabelValues("below_threshold").Add(float64(skipped.BelowThreshold))
}

// RecordRefresh records one snapshot refresh attempt
func (c *ScanCollector) RecordRefresh(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	c.refreshesTotal.WithLabelValues(outcome).Inc()
}
