package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Lifecycle absensi (check-in / check-out)
	LifecycleEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_lifecycle_events_total",
			Help: "Check-in/check-out attempts by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	// Retensi bulanan
	RetentionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_retention_runs_total",
			Help: "Monthly cleanup attempts by result (purged, in_flight, already_done, error)",
		},
		[]string{"result"},
	)

	RetentionDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_retention_deleted_records_total",
			Help: "Attendance records hard-deleted by the monthly cleanup",
		},
	)

	// Upload foto
	PhotoUploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attendance_photo_upload_duration_seconds",
			Help:    "Photo upload duration in seconds by backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	PhotoUploadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_photo_upload_failures_total",
			Help: "Failed photo uploads by backend",
		},
		[]string{"backend"},
	)
)

// Handler expose /metrics di Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
