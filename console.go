package devconsole

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/aretw0/devconsole/internal/runtime"
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/registry"
)

// CommandMessage is the autocomplete message shown while typing a command word.
const CommandMessage = "command"

// Console is the high-level entry point for the devconsole library.
// It owns the table of root commands and resolves input lines against it.
//
// A Console evaluates one line at a time. Callers that may run lines
// concurrently (HTTP, MCP) go through Serialized or Capture.
type Console struct {
	registry *registry.Registry
	executor *runtime.Executor
	execOpts []runtime.Option
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	out      io.Writer
	withHelp bool

	mu sync.Mutex
}

// Option defines a functional option for configuring the Console.
type Option func(*Console)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Console) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the console.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// WithOutput sets where command output goes. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithSuggestionDistance sets the edit distance for "did you mean" hints.
// Zero disables them.
func WithSuggestionDistance(distance int) Option {
	return func(c *Console) {
		c.execOpts = append(c.execOpts, runtime.WithSuggestionDistance(distance))
	}
}

// WithLineIDGenerator overrides how line ids are produced.
func WithLineIDGenerator(fn func() string) Option {
	return func(c *Console) {
		c.execOpts = append(c.execOpts, runtime.WithLineIDGenerator(fn))
	}
}

// WithoutHelp skips the built-in help command.
func WithoutHelp() Option {
	return func(c *Console) {
		c.withHelp = false
	}
}

// New creates a console with an empty command table plus "help".
func New(opts ...Option) *Console {
	c := &Console{
		registry: registry.NewRegistry(),
		out:      io.Discard,
		withHelp: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	execOpts := append([]runtime.Option{
		runtime.WithLogger(c.logger),
		runtime.WithLifecycleHooks(c.hooks),
	}, c.execOpts...)
	c.executor = runtime.NewExecutor(execOpts...)

	if c.withHelp {
		_ = c.registry.Register(HelpCommand, c.newHelp())
	}
	return c
}

// Register makes root reachable through word. The word is case folded.
// Registering an existing word replaces it.
func (c *Console) Register(word string, root domain.Node) error {
	word = command.FoldCase(word)
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return fmt.Errorf("command word %q contains whitespace", word)
	}
	if err := c.registry.Register(word, root); err != nil {
		return err
	}
	c.logger.Debug("command registered", "command", word, "kind", root.Kind())
	return nil
}

// RegisterAll registers every entry of cmds, stopping at the first error.
func (c *Console) RegisterAll(cmds map[string]domain.Node) error {
	words := make([]string, 0, len(cmds))
	for word := range cmds {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		if err := c.Register(word, cmds[word]); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes word and reports whether it was registered.
func (c *Console) Unregister(word string) bool {
	return c.registry.Remove(command.FoldCase(word))
}

// Commands returns the registered command words in sorted order.
func (c *Console) Commands() []string {
	return c.registry.Names()
}

// Root returns the node registered for word.
func (c *Console) Root(word string) (domain.Node, bool) {
	return c.registry.Lookup(command.FoldCase(word))
}

// Out returns a writer for command output. It stays valid across Capture
// calls, so commands may keep it.
func (c *Console) Out() io.Writer {
	return consoleWriter{c}
}

// Logf writes one line of command output.
func (c *Console) Logf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

type consoleWriter struct{ c *Console }

func (w consoleWriter) Write(p []byte) (int, error) {
	return w.c.out.Write(p)
}

// Execute splits line on whitespace and resolves it. Quoting is not
// interpreted.
func (c *Console) Execute(ctx context.Context, line string) (*domain.Result, error) {
	return c.ExecuteTokens(ctx, strings.Fields(line))
}

// ExecuteTokens resolves an already tokenized line. tokens[0] selects the
// root command.
func (c *Console) ExecuteTokens(ctx context.Context, tokens []string) (*domain.Result, error) {
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyLine
	}
	root, err := c.root(tokens[0])
	if err != nil {
		return nil, err
	}
	return c.executor.Execute(ctx, root, tokens)
}

// Complete returns the suggestions for the last token of line. A line that
// ends with whitespace asks for the next token.
func (c *Console) Complete(ctx context.Context, line string) domain.Suggestions {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || strings.TrimRightFunc(line, unicode.IsSpace) != line {
		tokens = append(tokens, "")
	}
	return c.CompleteTokens(ctx, tokens)
}

// CompleteTokens returns the suggestions for the last element of tokens,
// the token being typed.
func (c *Console) CompleteTokens(ctx context.Context, tokens []string) domain.Suggestions {
	if len(tokens) == 0 {
		return domain.Suggestions{}
	}
	if len(tokens) == 1 {
		prefix := command.FoldCase(tokens[0])
		var out []string
		for _, name := range c.Commands() {
			if strings.HasPrefix(name, prefix) {
				out = append(out, name)
			}
		}
		return domain.Suggestions{Candidates: out, Message: CommandMessage}
	}

	root, err := c.root(tokens[0])
	if err != nil {
		return domain.Suggestions{Message: err.Error()}
	}
	return c.executor.Complete(ctx, root, tokens)
}

// Serialized runs fn while holding the console lock.
func (c *Console) Serialized(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

// Capture executes line under the console lock and returns what the
// commands wrote.
func (c *Console) Capture(ctx context.Context, line string) (*domain.Result, string, error) {
	var (
		buf bytes.Buffer
		res *domain.Result
	)
	err := c.Serialized(func() error {
		previous := c.out
		c.out = &buf
		defer func() { c.out = previous }()

		var err error
		res, err = c.Execute(ctx, line)
		return err
	})
	return res, buf.String(), err
}

func (c *Console) root(word string) (domain.Node, error) {
	folded := command.FoldCase(word)
	if root, ok := c.registry.Lookup(folded); ok {
		return root, nil
	}
	names := c.Commands()
	c.logger.Debug("unknown command", "command", word)
	return nil, &domain.UnresolvedTokenError{
		Message:    unknownCommandMessage(word, names),
		Token:      folded,
		Position:   0,
		Suggestion: c.executor.Suggest(folded, names),
	}
}

func unknownCommandMessage(word string, names []string) string {
	lines := []string{"could not find command " + word, "available commands are:"}
	for _, name := range names {
		lines = append(lines, "* "+name)
	}
	return domain.Lines(lines...)
}
