package chain

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	reqCount    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	caller      Caller
}

func (m *metricsMiddleware) CallContext(ctx context.Context, result any, method string, args ...any) (err error) {
	defer func(s time.Time) {
		labels := []string{
			method, strconv.FormatBool(err != nil),
		}
		m.reqCount.WithLabelValues(labels...).Add(1)
		m.reqDuration.WithLabelValues(labels...).Observe(time.Since(s).Seconds())
	}(time.Now())
	return m.caller.CallContext(ctx, result, method, args...)
}

func NewMetrics(reqCount *prometheus.CounterVec, reqDuration *prometheus.HistogramVec, caller Caller) Caller {
	return &metricsMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		caller:      caller,
	}
}
