// Package metrics provides Prometheus metrics for the dispensing service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics. A nil *Metrics is valid and drops
// every observation, which keeps tests and partial wiring simple.
type Metrics struct {
	DispensesCreated    prometheus.Counter
	LabelsPrinted       prometheus.Counter
	LabelsReprinted     prometheus.Counter
	ScheduleAdvances    prometheus.Counter
	ScheduleNoOps       prometheus.Counter
	StoreFailures       prometheus.Counter
	ReplicationFailures prometheus.Counter
	PrintQueueDepth     prometheus.Gauge
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	m := &Metrics{
		DispensesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispenses_created_total",
			Help: "Total dispense records created",
		}),
		LabelsPrinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labels_printed_total",
			Help: "Total labels printed through print-and-update",
		}),
		LabelsReprinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "labels_reprinted_total",
			Help: "Total labels reprinted without a schedule update",
		}),
		ScheduleAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_advances_total",
			Help: "Total next-dose dates advanced",
		}),
		ScheduleNoOps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_noops_total",
			Help: "Total schedule updates skipped for custom-frequency dispenses",
		}),
		StoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_failures_total",
			Help: "Total persistence failures",
		}),
		ReplicationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "replication_failures_total",
			Help: "Total change events the replicator failed to deliver",
		}),
		PrintQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "print_queue_depth",
			Help: "Jobs waiting in the print spool queue",
		}),
	}

	prometheus.MustRegister(
		m.DispensesCreated,
		m.LabelsPrinted,
		m.LabelsReprinted,
		m.ScheduleAdvances,
		m.ScheduleNoOps,
		m.StoreFailures,
		m.ReplicationFailures,
		m.PrintQueueDepth,
	)

	return m
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) IncDispensesCreated() {
	if m != nil {
		m.DispensesCreated.Inc()
	}
}

func (m *Metrics) IncLabelsPrinted() {
	if m != nil {
		m.LabelsPrinted.Inc()
	}
}

func (m *Metrics) IncLabelsReprinted() {
	if m != nil {
		m.LabelsReprinted.Inc()
	}
}

func (m *Metrics) IncScheduleAdvances() {
	if m != nil {
		m.ScheduleAdvances.Inc()
	}
}

func (m *Metrics) IncScheduleNoOps() {
	if m != nil {
		m.ScheduleNoOps.Inc()
	}
}

func (m *Metrics) IncStoreFailures() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}

func (m *Metrics) IncReplicationFailures() {
	if m != nil {
		m.ReplicationFailures.Inc()
	}
}

func (m *Metrics) SetPrintQueueDepth(n int) {
	if m != nil {
		m.PrintQueueDepth.Set(float64(n))
	}
}
