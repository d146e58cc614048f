package config

import "time"

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // json vs text
	LogFilter         string // zapfilter rules, e.g. "debug:service.* info:*"
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // OTLP/gRPC receiver, data is written to stderr if empty
)

// Config holds the configuration values of a single command
type Config struct {
	SeasonFile      string
	Output          string
	MaxResults      int
	CacheExpiration time.Duration
}
