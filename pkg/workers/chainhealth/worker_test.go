package chainhealth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy-status-backend/pkg/clients/chain"
	"entropy-status-backend/pkg/clients/chain/chaintest"
)

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func gauges() (up, lastCheck prometheus.Gauge) {
	up = prometheus.NewGauge(prometheus.GaugeOpts{Name: "chain_up"})
	lastCheck = prometheus.NewGauge(prometheus.GaugeOpts{Name: "chain_last_check_timestamp"})
	return
}

func TestCheckChainUp(t *testing.T) {
	node := chaintest.NewNode()
	up, lastCheck := gauges()

	count := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "runs"}, []string{"method", "error"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "runs_seconds"}, []string{"method", "error"})

	w := NewWorker(chain.NewDialer(node.Start(t), 0, nopLogger), time.Minute, up, lastCheck, nopLogger)
	w = NewMetrics(count, duration, w)

	interval, err := w.CheckChain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, interval)

	assert.InDelta(t, 1, testutil.ToFloat64(up), 0)
	assert.Positive(t, testutil.ToFloat64(lastCheck))
	assert.InDelta(t, 1, testutil.ToFloat64(count.WithLabelValues("CheckChain", "false")), 0)
}

func TestCheckChainDown(t *testing.T) {
	up, lastCheck := gauges()
	up.Set(1)

	w := NewWorker(chain.NewDialer("ws://127.0.0.1:1", 0, nopLogger), time.Minute, up, lastCheck, nopLogger)

	interval, err := w.CheckChain(context.Background())

	var connErr *chain.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, time.Minute, interval)
	assert.InDelta(t, 0, testutil.ToFloat64(up), 0)
	assert.Positive(t, testutil.ToFloat64(lastCheck))
}
