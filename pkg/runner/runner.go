package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// DefaultExitWords end the loop when typed as the whole line.
var DefaultExitWords = []string{"exit", "quit"}

// Evaluator runs one line and returns what the commands wrote.
// *devconsole.Console implements it.
type Evaluator interface {
	Capture(ctx context.Context, line string) (*domain.Result, string, error)
}

// Runner handles the line loop of a console using the provided IO.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler over stdio is used.
	Handler IOHandler

	// Interceptor may veto a line before it runs. Optional.
	Interceptor LineInterceptor

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxInputSize limits the size of a line. Zero uses the default limit.
	MaxInputSize int

	// ExitWords end the loop. Nil uses DefaultExitWords.
	ExitWords []string

	// MarkdownCommands are the command words whose output is markdown.
	MarkdownCommands []string
}

// NewRunner creates a new Runner with default settings.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		ExitWords:        DefaultExitWords,
		MarkdownCommands: []string{"help"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads and evaluates lines until input ends, an exit word is typed or
// ctx is cancelled. Line failures are reported through the handler and do
// not stop the loop.
func (r *Runner) Run(ctx context.Context, console Evaluator) error {
	handler := r.resolveHandler()
	logger := r.logger()
	if s, ok := handler.(interface{ Stop() }); ok {
		defer s.Stop()
	}

	for {
		raw, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				logger.Debug("runner stopped", "reason", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		clean, err := SanitizeInputWithLimit(raw, r.maxInputSize())
		if err != nil {
			if err := handler.SystemOutput(ctx, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}

		line := strings.TrimSpace(clean)
		if line == "" {
			continue
		}
		if r.isExit(line) {
			logger.Debug("runner exit requested", "line", line)
			return nil
		}

		report := r.evaluate(ctx, console, line)
		if err := handler.Output(ctx, report); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

func (r *Runner) evaluate(ctx context.Context, console Evaluator, line string) Report {
	tokens := strings.Fields(line)
	report := Report{Line: line, Markdown: r.isMarkdown(tokens[0])}

	if r.Interceptor != nil {
		if err := r.Interceptor(ctx, tokens); err != nil {
			r.logger().Debug("line blocked", "line", line, "err", err)
			report.Err = err
			return report
		}
	}

	report.Result, report.Output, report.Err = console.Capture(ctx, line)
	return report
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	return NewTextHandler(os.Stdin, os.Stdout)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Runner) maxInputSize() int {
	if r.MaxInputSize > 0 {
		return r.MaxInputSize
	}
	return getMaxInputSize()
}

func (r *Runner) isExit(line string) bool {
	words := r.ExitWords
	if words == nil {
		words = DefaultExitWords
	}
	folded := command.FoldCase(line)
	for _, w := range words {
		if folded == w {
			return true
		}
	}
	return false
}

func (r *Runner) isMarkdown(word string) bool {
	folded := command.FoldCase(word)
	for _, w := range r.MarkdownCommands {
		if folded == w {
			return true
		}
	}
	return false
}
