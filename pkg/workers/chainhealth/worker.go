package chainhealth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"entropy-status-backend/pkg/clients/chain"
)

const checkTimeout = 10 * time.Second

type dialer interface {
	Dial(ctx context.Context) (chain.Client, error)
	Endpoint() string
}

type healthWorker struct {
	dialer    dialer
	interval  time.Duration
	up        prometheus.Gauge
	lastCheck prometheus.Gauge
	logger    *slog.Logger
}

type Worker interface {
	CheckChain(ctx context.Context) (interval time.Duration, err error)
}

// CheckChain checks that the configured node answers with a best block.
func (w *healthWorker) CheckChain(ctx context.Context) (interval time.Duration, err error) {
	log := w.logger.With("worker", "CheckChain")

	interval = w.interval

	defer func() {
		w.lastCheck.SetToCurrentTime()
		if err != nil {
			w.up.Set(0)
			return
		}
		w.up.Set(1)
	}()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := w.dialer.Dial(ctx)
	if err != nil {
		err = fmt.Errorf("failed to dial chain: %w", err)
		return
	}
	defer client.Close()

	hash, err := client.BlockHash(ctx)
	if err != nil {
		err = fmt.Errorf("failed to get best block: %w", err)
		return
	}

	log.Debug("chain is reachable", slog.String("endpoint", w.dialer.Endpoint()), slog.String("best_block", hash.Hex()))

	return
}

func NewWorker(
	dialer dialer,
	interval time.Duration,
	up prometheus.Gauge,
	lastCheck prometheus.Gauge,
	logger *slog.Logger,
) Worker {
	return &healthWorker{
		dialer:    dialer,
		interval:  interval,
		up:        up,
		lastCheck: lastCheck,
		logger:    logger,
	}
}
