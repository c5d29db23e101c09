// !ONLY FOR DEBUG PURPOSES
//
//go:build debug

package httpServer

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	MaxRequests     = 300
	RateLimitWindow = 60 * time.Second
)

func (h *handler) RegisterRoutes() {
	h.logger.Info("Registering debug routes")

	// On server side nginx or other reverse proxy should handle CORS
	// and OPTIONS requests, but for debug purposes we handle it here.
	h.server.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		requestedHeaders := c.Get("Access-Control-Request-Headers")
		if requestedHeaders != "" {
			c.Set("Access-Control-Allow-Headers", requestedHeaders)
		} else {
			c.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	})

	m := newMetrics(h.namespace, h.subsystem)

	h.server.Use(m.metricsMiddleware)
	h.server.Use(h.requestIDMiddleware)

	h.server.Use(limiter.New(limiter.Config{
		Max:               MaxRequests,
		Expiration:        RateLimitWindow,
		LimitReached:      h.limitReached,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	h.server.Get("/health", h.health)
	h.server.Get("/metrics", h.adminAuthMiddleware, h.metrics)

	apiv1 := h.server.Group("/api/v1", h.loggerMiddleware, h.deadlineMiddleware)
	{
		apiv1.Get("/programs", h.programs)
		apiv1.Get("/accounts", h.accounts)
		apiv1.Get("/validators", h.validators)
		apiv1.Get("/endpoint", h.endpoint)
		apiv1.Get("/status", h.snapshot)
	}
}
