package httpServer

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"entropy-status-backend/pkg/models"
)

func (h *handler) limitReached(c *fiber.Ctx) error {
	log := h.logger.With(
		slog.String("method", "limitReached"),
		slog.String("http_method", c.Method()),
		slog.String("url", c.OriginalURL()),
		slog.String("ip", c.IP()),
	)

	log.Warn("rate limit reached for request")
	return errorHandler(c, fiber.NewError(fiber.StatusTooManyRequests, "too many requests, please try again later"))
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(errorResponse{
			Error: e.Message,
		})
	}

	if appErr, ok := err.(*models.AppError); ok {
		msg := appErr.Message
		if appErr.Code == models.InternalServerErrorCode {
			msg = "internal server error"
		}

		return c.Status(appErr.Code).JSON(errorResponse{
			Error: msg,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Error: "internal server error",
	})
}
