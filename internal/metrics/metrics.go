package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the application.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	BabiesCreated        prometheus.Counter
	TrackingEventsLogged *prometheus.CounterVec
	InvitesCreated       *prometheus.CounterVec
	LoginFailures        prometheus.Counter
}

// New creates the collectors and registers them with registerer. A nil
// registerer selects the default Prometheus registry.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cradle_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cradle_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BabiesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cradle_babies_created_total",
			Help: "Total number of baby profiles created",
		}),
		TrackingEventsLogged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cradle_tracking_events_recorded_total",
			Help: "Total number of care events recorded by kind",
		}, []string{"kind"}),
		InvitesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cradle_invites_created_total",
			Help: "Total number of invitations created by relationship",
		}, []string{"relationship"}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "cradle_login_failures_total",
			Help: "Total number of rejected login attempts",
		}),
	}
}

func (m *Metrics) IncrementBabiesCreated() {
	if m == nil {
		return
	}
	m.BabiesCreated.Inc()
}

func (m *Metrics) IncrementTrackingEvent(kind string) {
	if m == nil {
		return
	}
	m.TrackingEventsLogged.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementInvitesCreated(relationship string) {
	if m == nil {
		return
	}
	m.InvitesCreated.WithLabelValues(relationship).Inc()
}

func (m *Metrics) IncrementLoginFailures() {
	if m == nil {
		return
	}
	m.LoginFailures.Inc()
}

// Middleware records request counts and latencies labelled by the matched
// route pattern, so path parameters do not inflate label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startedAt := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = "unmatched"
		}
		method := c.Method()

		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(startedAt).Seconds())
		return err
	}
}
