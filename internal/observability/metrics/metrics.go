package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "gigledger_"

	resultSuccess = "success"
	resultError   = "error"
)

// Exported result labels for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)

var (
	registerOnce sync.Once

	reportGenerateTotal   *prometheus.CounterVec
	reportGenerateLatency *prometheus.HistogramVec
	reportDetailTotal     *prometheus.CounterVec
	reportDetailLatency   *prometheus.HistogramVec
	reportExportTotal     *prometheus.CounterVec
	reportExportLatency   *prometheus.HistogramVec

	storeFetchErrors *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		reportGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_generate_total",
				Help: "Total report summary computations by kind and result",
			},
			[]string{"kind", "result"},
		)
		reportGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_generate_latency_seconds",
				Help:    "Report summary latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "result"},
		)
		reportDetailTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_detail_total",
				Help: "Total report drill-down computations by kind and result",
			},
			[]string{"kind", "result"},
		)
		reportDetailLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_detail_latency_seconds",
				Help:    "Report drill-down latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "result"},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		storeFetchErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "store_fetch_errors_total",
				Help: "Total record store fetch failures by query",
			},
			[]string{"query"},
		)

		prometheus.MustRegister(
			reportGenerateTotal,
			reportGenerateLatency,
			reportDetailTotal,
			reportDetailLatency,
			reportExportTotal,
			reportExportLatency,
			storeFetchErrors,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	openConns := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "db_open_connections",
			Help: "Open database connections",
		},
		func() float64 { return float64(db.Stats().OpenConnections) },
	)
	inUse := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "db_in_use_connections",
			Help: "Database connections currently in use",
		},
		func() float64 { return float64(db.Stats().InUse) },
	)
	if err := prometheus.Register(openConns); err != nil && logger != nil {
		logger.Printf("metrics: register db open conns: %v", err)
	}
	if err := prometheus.Register(inUse); err != nil && logger != nil {
		logger.Printf("metrics: register db in-use conns: %v", err)
	}
}

// ObserveReportGenerate records summary latency and result by report kind.
func ObserveReportGenerate(kind, result string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportGenerateTotal != nil {
		reportGenerateTotal.WithLabelValues(kind, result).Inc()
	}
	if reportGenerateLatency != nil {
		reportGenerateLatency.WithLabelValues(kind, result).Observe(duration.Seconds())
	}
}

// ObserveReportDetail records drill-down latency and result by report kind.
func ObserveReportDetail(kind, result string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportDetailTotal != nil {
		reportDetailTotal.WithLabelValues(kind, result).Inc()
	}
	if reportDetailLatency != nil {
		reportDetailLatency.WithLabelValues(kind, result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result by format.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncStoreFetchError increments the fetch failure counter for a query.
func IncStoreFetchError(query string) {
	if query == "" {
		query = "unknown"
	}
	if storeFetchErrors != nil {
		storeFetchErrors.WithLabelValues(query).Inc()
	}
}
