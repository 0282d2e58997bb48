package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsRequestsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/baby/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for _, path := range []string{"/baby/1", "/baby/2", "/missing"} {
		response, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		_ = response.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/baby/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementBabiesCreated()
	m.IncrementTrackingEvent("sleep")
	m.IncrementTrackingEvent("sleep")
	m.IncrementInvitesCreated("PARENT")
	m.IncrementLoginFailures()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BabiesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrackingEventsLogged.WithLabelValues("sleep")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvitesCreated.WithLabelValues("PARENT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginFailures))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementBabiesCreated()
		m.IncrementTrackingEvent("feeding")
		m.IncrementInvitesCreated("CAREGIVER")
		m.IncrementLoginFailures()
	})
}
