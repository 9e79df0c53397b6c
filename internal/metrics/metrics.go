package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentcrm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentcrm_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentcrm_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"status"},
	)

	BookingsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_bookings_cancelled_total",
			Help: "Total number of bookings soft-cancelled",
		},
	)

	DraftsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_booking_drafts_purged_total",
			Help: "Total number of stale draft bookings purged",
		},
	)

	CalendarSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentcrm_calendar_syncs_total",
			Help: "Total number of Google Calendar event sync attempts",
		},
		[]string{"result"},
	)

	PaymentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_payments_created_total",
			Help: "Total number of payment sessions created",
		},
	)

	PaymentsCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_payments_credited_total",
			Help: "Total number of successful payment credits applied to bookings",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_rate_limited_requests_total",
			Help: "Total number of requests rejected by the per-IP rate limiter",
		},
	)

	AvitoImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentcrm_avito_imports_total",
			Help: "Total number of Avito dialog import runs",
		},
		[]string{"outcome"},
	)

	AvitoLeadsImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentcrm_avito_leads_imported_total",
			Help: "Total number of leads mapped from Avito chats",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(status string) {
	BookingsCreatedTotal.WithLabelValues(status).Inc()
}

func RecordBookingCancelled() {
	BookingsCancelledTotal.Inc()
}

func RecordDraftsPurged(n int) {
	DraftsPurgedTotal.Add(float64(n))
}

func RecordCalendarSync(result string) {
	CalendarSyncsTotal.WithLabelValues(result).Inc()
}

func RecordAvitoImport(outcome string, leads int) {
	AvitoImportsTotal.WithLabelValues(outcome).Inc()
	if leads > 0 {
		AvitoLeadsImportedTotal.Add(float64(leads))
	}
}
