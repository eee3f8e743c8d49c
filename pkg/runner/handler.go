package runner

import (
	"context"

	"github.com/aretw0/devconsole/pkg/domain"
)

// Report is the outcome of one line.
type Report struct {
	Line   string
	Result *domain.Result
	// Output is what the commands wrote while the line ran.
	Output string
	Err    error
	// Markdown marks Output as markdown, such as help pages.
	Markdown bool
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next line. It returns io.EOF when input is exhausted.
	Input(ctx context.Context) (string, error)

	// Output presents the report of a line.
	Output(ctx context.Context, report Report) error

	// SystemOutput presents a meta-message to the user (e.g. rejected input).
	// This is distinct from command output.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling this package.
type ContentRenderer func(string) (string, error)
