package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/aretw0/devconsole/internal/presentation/tui"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/runner"
)

// Console is what the REPL needs from devconsole.Console.
type Console interface {
	runner.Evaluator
	Complete(ctx context.Context, line string) domain.Suggestions
}

// Config configures a REPL session.
type Config struct {
	Prompt       string
	HistoryFile  string
	JSON         bool
	Version      string
	MaxInputSize int
	Logger       *slog.Logger
	Interceptor  runner.LineInterceptor
}

// Run reads lines from in until EOF, an exit word or ctx cancellation.
// When in and out are both terminals the session gets line editing, tab
// completion, history, colors and rendered help. Otherwise lines are read
// plainly, which suits pipes and scripts.
func Run(ctx context.Context, console Console, cfg Config, in io.Reader, out io.Writer) error {
	handler, closeFn := newHandler(ctx, console, cfg, in, out)
	defer closeFn()

	r := runner.NewRunner(
		runner.WithLogger(cfg.Logger),
		runner.WithInputHandler(handler),
		runner.WithMaxInputSize(cfg.MaxInputSize),
		runner.WithInterceptor(cfg.Interceptor),
	)
	return r.Run(ctx, console)
}

func newHandler(ctx context.Context, console Console, cfg Config, in io.Reader, out io.Writer) (runner.IOHandler, func()) {
	if cfg.JSON {
		return runner.NewJSONHandler(in, out), func() {}
	}
	if IsTerminal(in) && IsTerminal(out) {
		p := termenv.EnvColorProfile()
		tui.PrintBanner(out, p, cfg.Version)
		h := NewLinerHandler(ctx, console, out, cfg.Prompt, cfg.HistoryFile,
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
			runner.WithTextHandlerStyles(tui.NewErrorStyle(p), tui.NewHintStyle(p)),
		)
		return h, h.Close
	}
	return runner.NewTextHandler(in, out,
		runner.WithTextHandlerPrompt(""),
		runner.WithTextHandlerRenderer(tui.NewPlainRenderer()),
	), func() {}
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LinerHandler is a runner.IOHandler reading from the terminal with
// line editing. Output is formatted like runner.TextHandler.
type LinerHandler struct {
	*runner.TextHandler

	line        *liner.State
	prompt      string
	historyFile string
}

// NewLinerHandler takes over the terminal until Close.
func NewLinerHandler(ctx context.Context, console Console, out io.Writer, prompt, historyFile string, opts ...runner.TextHandlerOption) *LinerHandler {
	if prompt == "" {
		prompt = runner.DefaultPrompt
	}
	h := &LinerHandler{
		TextHandler: runner.NewTextHandler(strings.NewReader(""), out, opts...),
		line:        liner.NewLiner(),
		prompt:      prompt,
		historyFile: historyFile,
	}
	h.line.SetCtrlCAborts(true)
	h.line.SetTabCompletionStyle(liner.TabPrints)
	h.line.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeWord(line, pos, func(before string) []string {
			return console.Complete(ctx, before).Candidates
		})
	})

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = h.line.ReadHistory(f)
			f.Close()
		}
	}
	return h
}

// Input reads one line. Ctrl+C and Ctrl+D end the session.
func (h *LinerHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := h.line.Prompt(h.prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		h.line.AppendHistory(text)
	}
	return text, nil
}

// Close saves the history and gives the terminal back.
func (h *LinerHandler) Close() {
	if h.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(h.historyFile), 0o755); err == nil {
			if f, err := os.OpenFile(h.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				_, _ = h.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	_ = h.line.Close()
}
