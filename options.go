package dispatch

import "github.com/Biometria-se/grizzly-sub003/types"

// Option configures a dispatcher with optional dependencies.
type Option func(*dispatcherOptions)

// dispatcherOptions holds optional dispatcher configuration.
type dispatcherOptions struct {
	logger  types.Logger
	metrics types.MetricsCollector
}

// newOptions applies the functional options over zero-value defaults.
func newOptions(opts []Option) *dispatcherOptions {
	o := &dispatcherOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithLogger sets a structured logger.
//
// Example:
//
//	logger := logging.NewSlog(slog.Default())
//	d, err := dispatch.NewWeighted(workers, classes, dispatch.WithLogger(logger))
func WithLogger(logger types.Logger) Option {
	return func(o *dispatcherOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "dispatch")
//	d, err := dispatch.NewWeighted(workers, classes, dispatch.WithMetrics(collector))
func WithMetrics(collector types.MetricsCollector) Option {
	return func(o *dispatcherOptions) {
		o.metrics = collector
	}
}
