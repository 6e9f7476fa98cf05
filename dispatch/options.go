package dispatch

import "github.com/rise-and-shine/mediator/logger"

// Config holds dispatcher settings, usually loaded with cfgloader.
type Config struct {
	// StrictResultTypes makes Send return an error when the handler's result
	// type differs from the requested one, instead of an empty failure.
	StrictResultTypes bool `yaml:"strict_result_types" default:"false"`
}

type options struct {
	logger logger.Logger
	strict bool
}

// Option configures a Dispatcher or an EventDispatcher.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrictResultTypes enables or disables strict result type checking in Send.
func WithStrictResultTypes(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return WithStrictResultTypes(cfg.StrictResultTypes)
}

func buildOptions(opts []Option) options {
	o := options{logger: logger.Named("cqrs.dispatch")}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
