package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the enrollment engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	enrollmentsCreated prometheus.Counter
	enrollmentsRemoved prometheus.Counter
	gradesRecorded     prometheus.Counter
	backupsCreated     prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
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

	enrollmentsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_created_total",
		Help: "Total enrollments accepted by the engine",
	})

	enrollmentsRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_removed_total",
		Help: "Total enrollments removed by the engine",
	})

	gradesRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grades_recorded_total",
		Help: "Total grades recorded on enrollments",
	})

	backupsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backups_created_total",
		Help: "Total backup snapshots written",
	})

	registry.MustRegister(requestDuration, requestTotal, enrollmentsCreated, enrollmentsRemoved, gradesRecorded, backupsCreated)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		enrollmentsCreated: enrollmentsCreated,
		enrollmentsRemoved: enrollmentsRemoved,
		gradesRecorded:     gradesRecorded,
		backupsCreated:     backupsCreated,
	}
}

// Handler serves the scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// EnrollmentCreated increments the enrollment counter.
func (m *MetricsService) EnrollmentCreated() { m.enrollmentsCreated.Inc() }

// EnrollmentRemoved increments the unenrollment counter.
func (m *MetricsService) EnrollmentRemoved() { m.enrollmentsRemoved.Inc() }

// GradeRecorded increments the recorded-grade counter.
func (m *MetricsService) GradeRecorded() { m.gradesRecorded.Inc() }

// BackupCreated increments the backup counter.
func (m *MetricsService) BackupCreated() { m.backupsCreated.Inc() }
