package main

import (
	"log/slog"
	"time"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	MetricsPort     string        `env:"APP_METRICS_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`

	PostgresDSN string `env:"PG_DSN"`

	// RPCURL is the chain node endpoint; HousePrivateKey is the base58
	// secret key of the custodial wallet.
	RPCURL          string `env:"CHAIN_RPC_URL"`
	HousePrivateKey string `env:"HOUSE_PRIVATE_KEY"`
}
