package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithInterceptor configures the line middleware.
func WithInterceptor(interceptor LineInterceptor) Option {
	return func(r *Runner) {
		r.Interceptor = interceptor
	}
}

// WithMaxInputSize overrides the input size limit. Zero keeps the default.
func WithMaxInputSize(size int) Option {
	return func(r *Runner) {
		r.MaxInputSize = size
	}
}

// WithExitWords replaces the words that end the loop.
func WithExitWords(words ...string) Option {
	return func(r *Runner) {
		r.ExitWords = words
	}
}
