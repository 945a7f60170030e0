// Package metrics collects run metrics of chart synchronization.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the run metrics on its own registry. A nil *Collector is a no-op.
type Collector struct {
	Registry *prometheus.Registry

	ChartsTotal     *prometheus.CounterVec
	RowsScanned     prometheus.Counter
	RowsValid       prometheus.Counter
	WeekBuckets     prometheus.Gauge
	SyncDuration    prometheus.Histogram
	LastSyncSuccess prometheus.Gauge
}

// NewCollector creates a collector registered on a fresh registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,

		ChartsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "charts_reconciled_total",
				Help:      "Charts reconciled by action (create, update) and status (ok, failed)",
			},
			[]string{"action", "status"},
		),

		RowsScanned: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_scanned_total",
				Help:      "Data rows scanned, header excluded",
			},
		),

		RowsValid: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_valid_total",
				Help:      "Data rows with a valid date and metric",
			},
		),

		WeekBuckets: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "week_buckets",
				Help:      "Week buckets produced by the last weekly sync",
			},
		),

		SyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_duration_seconds",
				Help:      "Duration of a chart sync in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),

		LastSyncSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_sync_success_timestamp_seconds",
				Help:      "Unix time of the last sync without failed charts",
			},
		),
	}
}

// RecordChart counts one reconciled chart.
func (c *Collector) RecordChart(action string, ok bool) {
	if c == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	c.ChartsTotal.WithLabelValues(action, status).Inc()
}

// RecordScan counts scanned and valid rows.
func (c *Collector) RecordScan(scanned, valid int) {
	if c == nil {
		return
	}
	c.RowsScanned.Add(float64(scanned))
	c.RowsValid.Add(float64(valid))
}

// SetWeekBuckets records the bucket count of a weekly sync.
func (c *Collector) SetWeekBuckets(n int) {
	if c == nil {
		return
	}
	c.WeekBuckets.Set(float64(n))
}

// MarkSuccess stamps the last successful sync.
func (c *Collector) MarkSuccess(at time.Time) {
	if c == nil {
		return
	}
	c.LastSyncSuccess.Set(float64(at.Unix()))
}

// Timer measures one sync.
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewSyncTimer starts timing a sync.
func (c *Collector) NewSyncTimer() *Timer {
	t := &Timer{start: time.Now()}
	if c != nil {
		t.observer = c.SyncDuration
	}
	return t
}

// ObserveDuration records the elapsed time since the timer was created.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(d.Seconds())
	}
	return d
}

// WriteTextfile writes the registry in the text exposition format, for pickup
// by a node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.Registry)
}
