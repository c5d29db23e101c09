package httpServer

import (
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

func (h *handler) adminAuthMiddleware(c *fiber.Ctx) error {
	accessToken := c.Get("Authorization")
	if accessToken == "" {
		return errorHandler(c, fiber.NewError(fiber.StatusUnauthorized, "unauthorized"))
	}

	if strings.HasPrefix(strings.ToLower(accessToken), "bearer ") {
		accessToken = accessToken[7:]
	}

	hash := md5.Sum([]byte(accessToken))
	tokenHash := fmt.Sprintf("%x", hash[:])

	if _, exists := h.adminAuthTokens[tokenHash]; !exists {
		return errorHandler(c, fiber.NewError(fiber.StatusForbidden, "forbidden"))
	}

	return c.Next()
}

// requestIDMiddleware keeps the caller's request id or assigns a new one.
func (h *handler) requestIDMiddleware(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Locals("request_id", id)
	c.Set(requestIDHeader, id)

	return c.Next()
}

// deadlineMiddleware bounds the aggregation work of one request. fasthttp does not report
// client disconnects, so the deadline is what stops work for abandoned requests.
func (h *handler) deadlineMiddleware(c *fiber.Ctx) error {
	if h.requestTimeout <= 0 {
		return c.Next()
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.requestTimeout)
	defer cancel()

	c.SetUserContext(ctx)

	return c.Next()
}

func (h *handler) loggerMiddleware(c *fiber.Ctx) error {
	headers := c.GetReqHeaders()
	if _, ok := headers["Authorization"]; ok {
		headers["Authorization"] = []string{"REDACTED"}
	}

	if _, ok := headers["Cookie"]; ok {
		headers["Cookie"] = []string{"REDACTED"}
	}

	h.logger.Debug(
		"request received",
		slog.String("method", c.Method()),
		slog.String("url", c.OriginalURL()),
		slog.Any("request_id", c.Locals("request_id")),
		slog.Any("headers", headers),
	)

	return c.Next()
}
