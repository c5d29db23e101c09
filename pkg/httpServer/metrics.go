package httpServer

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	reqCount    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
}

func (m *metrics) metricsMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	// Unmatched routes are collapsed to keep label cardinality bounded.
	path := "unknown"
	if r := c.Route(); r != nil && r.Path != "/" {
		path = r.Path
	}

	labels := []string{
		c.Method(), path, strconv.Itoa(c.Response().StatusCode()),
	}
	m.reqCount.WithLabelValues(labels...).Add(1)
	m.reqDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

	return err
}

func newMetrics(namespace, subsystem string) *metrics {
	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_count",
			Help:      "HTTP requests count",
		},
		[]string{"method", "path", "status"},
	)

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_duration",
			Help:      "HTTP requests duration",
		},
		[]string{"method", "path", "status"},
	)

	return &metrics{
		reqCount:    register(reqCount),
		reqDuration: register(reqDuration),
	}
}

// register returns the already registered collector when routes are registered twice.
func register[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
