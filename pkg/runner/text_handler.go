package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/devconsole/pkg/domain"
)

// DefaultPrompt is printed before each line read by a TextHandler.
const DefaultPrompt = "> "

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Prompt   string
	// ErrorStyle and HintStyle decorate error and "did you mean" lines.
	ErrorStyle func(string) string
	HintStyle  func(string) string

	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	stopOnce  sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the markdown renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerPrompt configures the prompt. An empty prompt prints nothing.
func WithTextHandlerPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithTextHandlerStyles configures how error and hint lines are decorated.
func WithTextHandlerStyles(errorStyle, hintStyle func(string) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.ErrorStyle = errorStyle
		h.HintStyle = hintStyle
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: DefaultPrompt,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honor ctx. It ends at
// the first read error or once Stop is called.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" && !h.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case h.inputChan <- res:
		return true
	case <-h.done:
		return false
	}
}

// Stop releases the background reader. Lines it has not handed over yet
// are dropped and later Input calls report io.EOF. A read already blocked
// on the underlying reader ends with that read.
func (h *TextHandler) Stop() {
	h.stopOnce.Do(func() {
		if h.done != nil {
			close(h.done)
		}
	})
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if h.Prompt != "" {
		fmt.Fprint(h.Writer, h.Prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}

func (h *TextHandler) Output(ctx context.Context, report Report) error {
	if out := strings.TrimSpace(report.Output); out != "" {
		if report.Markdown && h.Renderer != nil {
			if rendered, err := h.Renderer(out); err == nil {
				out = strings.TrimSpace(rendered)
			}
		}
		fmt.Fprintln(h.Writer, out)
	}

	if report.Err != nil {
		fmt.Fprintln(h.Writer, style(h.ErrorStyle, report.Err.Error()))
		var unresolved *domain.UnresolvedTokenError
		if errors.As(report.Err, &unresolved) && unresolved.Suggestion != "" {
			fmt.Fprintln(h.Writer, style(h.HintStyle, "did you mean "+unresolved.Suggestion+"?"))
		}
		return nil
	}

	if report.Result != nil && report.Result.Suggestions != nil {
		s := report.Result.Suggestions
		if len(s.Candidates) == 0 {
			fmt.Fprintln(h.Writer, s.Message)
			return nil
		}
		fmt.Fprintf(h.Writer, "%s: %s\n", s.Message, strings.Join(s.Candidates, " "))
	}
	return nil
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}

func style(fn func(string) string, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}
