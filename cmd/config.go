package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"entropy-status-backend/pkg/records"
)

var logLevels = map[uint8]slog.Level{
	0: slog.LevelDebug,
	1: slog.LevelInfo,
	2: slog.LevelWarn,
	3: slog.LevelError,
}

type System struct {
	Port            string        `env:"SYSTEM_PORT" envDefault:"9090"`
	AdminAuthTokens string        `env:"SYSTEM_ADMIN_AUTH_TOKENS" envDefault:""`
	LogLevel        uint8         `env:"SYSTEM_LOG_LEVEL" envDefault:"1"` // 0 - debug, 1 - info, 2 - warn, 3 - error
	RequestTimeout  time.Duration `env:"SYSTEM_REQUEST_TIMEOUT" envDefault:"30s"`
}

type Chain struct {
	Endpoint     string         `env:"CHAIN_ENDPOINT" envDefault:"ws://localhost:9944"`
	NetworkName  string         `env:"CHAIN_NETWORK_NAME" envDefault:"Local Devnet"`
	PageSize     int            `env:"CHAIN_PAGE_SIZE" envDefault:"256"`
	SS58Prefix   uint16         `env:"CHAIN_SS58_PREFIX" envDefault:"42"`
	DecodePolicy records.Policy `env:"CHAIN_DECODE_POLICY" envDefault:"strict"`
}

type Metadata struct {
	ServiceBase string        `env:"METADATA_SERVICE_BASE" envDefault:"http://127.0.0.1:3000"`
	Concurrency int           `env:"METADATA_CONCURRENCY" envDefault:"3"`
	Timeout     time.Duration `env:"METADATA_TIMEOUT" envDefault:"5s"`
}

type Metrics struct {
	Namespace        string `env:"NAMESPACE" envDefault:"entropy"`
	ServerSubsystem  string `env:"SERVER_SUBSYSTEM" envDefault:"status_server"`
	ClientsSubsystem string `env:"CLIENTS_SUBSYSTEM" envDefault:"status_clients"`
	WorkersSubsystem string `env:"WORKERS_SUBSYSTEM" envDefault:"status_workers"`
}

type Workers struct {
	ChainCheckInterval time.Duration `env:"WORKERS_CHAIN_CHECK_INTERVAL" envDefault:"30s"`
}

type Config struct {
	System   System
	Chain    Chain
	Metadata Metadata
	Metrics  Metrics
	Workers  Workers
}

func loadConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(&cfg.System); err != nil {
		log.Fatalf("Failed to parse system config: %v", err)
	}
	if err := env.Parse(&cfg.Chain); err != nil {
		log.Fatalf("Failed to parse chain config: %v", err)
	}
	if err := env.Parse(&cfg.Metadata); err != nil {
		log.Fatalf("Failed to parse metadata config: %v", err)
	}
	if err := env.Parse(&cfg.Metrics); err != nil {
		log.Fatalf("Failed to parse metrics config: %v", err)
	}
	if err := env.Parse(&cfg.Workers); err != nil {
		log.Fatalf("Failed to parse workers config: %v", err)
	}

	return cfg
}
