package workers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCheck struct {
	runs atomic.Int32
}

func (p *countingCheck) CheckChain(context.Context) (time.Duration, error) {
	if p.runs.Add(1)%2 == 0 {
		return time.Millisecond, errors.New("node unavailable")
	}
	return time.Millisecond, nil
}

func TestWorkersRunUntilCanceled(t *testing.T) {
	check := &countingCheck{}
	w := NewWorkers(check, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	require.Eventually(t, func() bool {
		return check.runs.Load() >= 3
	}, time.Second, time.Millisecond)

	cancel()
	time.Sleep(10 * time.Millisecond)
	stopped := check.runs.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, check.runs.Load())
}
