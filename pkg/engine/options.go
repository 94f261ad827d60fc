package engine

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultNamespace  = "tether"
	defaultTracerName = "tether"
)

// Config configures an Engine.
type Config struct {
	// Logger receives operation logs (default: slog.Default()).
	Logger *slog.Logger

	// TracerName is the OpenTelemetry tracer name (default: "tether").
	TracerName string

	// Namespace is the metrics namespace (default: "tether").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// Buckets are the histogram buckets for operation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures an Engine.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Logger:     slog.Default(),
		TracerName: defaultTracerName,
		Namespace:  defaultNamespace,
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
	}
}
