package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petsu_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "path", "status"})

	BookingsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petsu_bookings_created_total",
		Help: "Bookings created, by kind (event or grooming).",
	}, []string{"kind"})

	EmailsDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "petsu_outbox_emails_total",
		Help: "Outbox email delivery attempts, by result.",
	}, []string{"result"})

	ConsultationsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "petsu_consultations_expired_total",
		Help: "Pending consultations expired by the sweep worker.",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, BookingsCreated, EmailsDispatched, ConsultationsExpired)
}

func ObserveRequest(method, path string, status int) {
	if path == "" {
		path = "unmatched"
	}
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
