package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the import pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	importsTotal    prometheus.Counter
	workshopsTotal  prometheus.Counter
	selectionsTotal prometheus.Counter
	reportsTotal    *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	importsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "imports_total",
		Help: "Total number of completed workbook imports",
	})

	workshopsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workshops_imported_total",
		Help: "Total number of workshop aggregates produced by imports",
	})

	selectionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "selections_imported_total",
		Help: "Total number of workshop selections produced by imports",
	})

	reportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total number of generated reports",
	}, []string{"type", "format"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, importsTotal, workshopsTotal, selectionsTotal, reportsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		importsTotal:    importsTotal,
		workshopsTotal:  workshopsTotal,
		selectionsTotal: selectionsTotal,
		reportsTotal:    reportsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request duration and count.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
}

// RecordImport counts one completed import and its output sizes.
func (m *MetricsService) RecordImport(workshops, selections int) {
	if m == nil {
		return
	}
	m.importsTotal.Inc()
	m.workshopsTotal.Add(float64(workshops))
	m.selectionsTotal.Add(float64(selections))
}

// RecordReport counts one generated report.
func (m *MetricsService) RecordReport(reportType, format string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(reportType, format).Inc()
}
