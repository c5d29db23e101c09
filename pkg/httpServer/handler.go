package httpServer

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	v1 "entropy-status-backend/pkg/models/api/v1"
)

type status interface {
	Programs(ctx context.Context) ([]v1.Program, error)
	RegisteredAccounts(ctx context.Context) ([]v1.RegisteredAccount, error)
	Validators(ctx context.Context) ([]v1.Validator, error)
	Snapshot(ctx context.Context) v1.Status
	Endpoint() v1.Endpoint
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	server          *fiber.App
	logger          *slog.Logger
	status          status
	namespace       string
	subsystem       string
	adminAuthTokens map[string]struct{}
	requestTimeout  time.Duration
}

func New(
	server *fiber.App,
	status status,
	adminAuthTokens []string,
	requestTimeout time.Duration,
	namespace string,
	subsystem string,
	logger *slog.Logger,
) *handler {
	adminTokensMap := make(map[string]struct{})
	for _, token := range adminAuthTokens {
		if token == "" {
			continue
		}
		adminTokensMap[token] = struct{}{}
	}

	h := &handler{
		server:          server,
		status:          status,
		namespace:       namespace,
		subsystem:       subsystem,
		adminAuthTokens: adminTokensMap,
		requestTimeout:  requestTimeout,
		logger:          logger,
	}

	return h
}
