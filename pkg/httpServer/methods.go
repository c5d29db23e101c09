package httpServer

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *handler) programs(c *fiber.Ctx) error {
	resp, err := h.status.Programs(c.UserContext())
	if err != nil {
		return errorHandler(c, err)
	}

	return c.JSON(resp)
}

func (h *handler) accounts(c *fiber.Ctx) error {
	resp, err := h.status.RegisteredAccounts(c.UserContext())
	if err != nil {
		return errorHandler(c, err)
	}

	return c.JSON(resp)
}

func (h *handler) validators(c *fiber.Ctx) error {
	resp, err := h.status.Validators(c.UserContext())
	if err != nil {
		return errorHandler(c, err)
	}

	return c.JSON(resp)
}

func (h *handler) endpoint(c *fiber.Ctx) error {
	return c.JSON(h.status.Endpoint())
}

func (h *handler) snapshot(c *fiber.Ctx) error {
	return c.JSON(h.status.Snapshot(c.UserContext()))
}

func (h *handler) health(c *fiber.Ctx) error {
	return okHandler(c)
}

func (h *handler) metrics(c *fiber.Ctx) error {
	m := promhttp.Handler()

	return adaptor.HTTPHandler(m)(c)
}
