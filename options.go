package lunavdb

import (
	"log/slog"

	"github.com/hupe1980/lunavdb/compress"
)

const (
	// DefaultDimension is the embedding length used when none is configured.
	DefaultDimension = 1024

	// DefaultBucketSize is the leaf capacity of the spatial tree.
	DefaultBucketSize = 32
)

type options struct {
	dimension        int
	bucketSize       int
	compressor       compress.Compressor
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		dimension:        DefaultDimension,
		bucketSize:       DefaultBucketSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures New, Load and Open.
type Option func(*options)

// WithDimension sets the embedding length D. Every stored embedding is padded
// with zeros or truncated to D values.
//
// Load and Open ignore it: a loaded index keeps the dimension it was dumped with.
func WithDimension(dim int) Option {
	return func(o *options) {
		o.dimension = dim
	}
}

// WithBucketSize sets how many points a leaf holds before it splits.
//
// Load and Open ignore it, like WithDimension.
func WithBucketSize(size int) Option {
	return func(o *options) {
		o.bucketSize = size
	}
}

// WithCompressor configures the compressor applied by Dump.
// Load always decodes with the compressor named in the data, and a loaded DB
// keeps dumping with it unless WithCompressor is given.
//
// If nil is passed, compress.Default is used.
func WithCompressor(c compress.Compressor) Option {
	return func(o *options) {
		if c == nil {
			c = compress.Default
		}
		o.compressor = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lunavdb.BasicMetricsCollector{}
//	db, _ := lunavdb.New(nil, lunavdb.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, Avg latency: %dns\n", stats.AddCount, stats.AddAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lunavdb.NewJSONLogger(slog.LevelInfo)
//	db, _ := lunavdb.New(nil, lunavdb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
