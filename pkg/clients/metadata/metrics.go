package metadata

import (
	"context"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	reqCount    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	client      Client
}

func (m *metricsMiddleware) GetProgram(ctx context.Context, hash common.Hash) (p *Package, err error) {
	defer func(s time.Time) {
		labels := []string{
			"GetProgram", strconv.FormatBool(err != nil),
		}
		m.reqCount.WithLabelValues(labels...).Add(1)
		m.reqDuration.WithLabelValues(labels...).Observe(time.Since(s).Seconds())
	}(time.Now())
	return m.client.GetProgram(ctx, hash)
}

func NewMetrics(reqCount *prometheus.CounterVec, reqDuration *prometheus.HistogramVec, client Client) Client {
	return &metricsMiddleware{
		reqCount:    reqCount,
		reqDuration: reqDuration,
		client:      client,
	}
}
