package timeframe

import (
	"log/slog"
)

type options struct {
	logger *slog.Logger
	index  string
}

// Option configures ReadCSV and RunPipeline.
type Option func(*options)

// WithLogger sets the logger used for load and pipeline lifecycle messages.
// If nil is passed, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.Default()
		}
		o.logger = l
	}
}

// WithIndex names the index column of a CSV file. Without it the index is
// picked as FromColumns does.
func WithIndex(name string) Option {
	return func(o *options) {
		o.index = name
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
