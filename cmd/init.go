package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

type appMetrics struct {
	rpcRequestsCount         *prometheus.CounterVec
	rpcRequestsDuration      *prometheus.HistogramVec
	metadataRequestsCount    *prometheus.CounterVec
	metadataRequestsDuration *prometheus.HistogramVec
	workersRunCount          *prometheus.CounterVec
	workersRunDuration       *prometheus.HistogramVec
	chainUp                  prometheus.Gauge
	chainLastCheck           prometheus.Gauge
}

func newAppMetrics(config *Config) *appMetrics {
	m := &appMetrics{
		rpcRequestsCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.ClientsSubsystem,
				Name:      "rpc_requests_count",
				Help:      "Chain RPC requests count",
			},
			[]string{"method", "error"},
		),
		rpcRequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.ClientsSubsystem,
				Name:      "rpc_requests_duration",
				Help:      "Chain RPC requests duration",
			},
			[]string{"method", "error"},
		),
		metadataRequestsCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.ClientsSubsystem,
				Name:      "metadata_requests_count",
				Help:      "Program metadata requests count",
			},
			[]string{"method", "error"},
		),
		metadataRequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.ClientsSubsystem,
				Name:      "metadata_requests_duration",
				Help:      "Program metadata requests duration",
			},
			[]string{"method", "error"},
		),
		workersRunCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.WorkersSubsystem,
				Name:      "workers_requests_count",
				Help:      "Workers requests count",
			},
			[]string{"method", "error"},
		),
		workersRunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.WorkersSubsystem,
				Name:      "workers_requests_duration",
				Help:      "Workers requests duration",
			},
			[]string{"method", "error"},
		),
		chainUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.WorkersSubsystem,
				Name:      "chain_up",
				Help:      "Whether the last chain check succeeded",
			},
		),
		chainLastCheck: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: config.Metrics.Namespace,
				Subsystem: config.Metrics.WorkersSubsystem,
				Name:      "chain_last_check_timestamp",
				Help:      "Unix time of the last chain check",
			},
		),
	}

	prometheus.MustRegister(
		m.rpcRequestsCount,
		m.rpcRequestsDuration,
		m.metadataRequestsCount,
		m.metadataRequestsDuration,
		m.workersRunCount,
		m.workersRunDuration,
		m.chainUp,
		m.chainLastCheck,
	)

	return m
}
