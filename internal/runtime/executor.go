package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/devconsole/pkg/domain"
)

// DefaultSuggestionDistance is the largest edit distance for which an
// unresolved token gets a "did you mean" suggestion.
const DefaultSuggestionDistance = 2

// Executor drives a command chain over the tokens of one line.
// It keeps no per-line state between calls.
type Executor struct {
	logger             *slog.Logger
	hooks              domain.LifecycleHooks
	suggestionDistance int
	newLineID          func() string
}

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithSuggestionDistance sets the edit distance used for suggestions.
// Zero or less disables suggestions.
func WithSuggestionDistance(distance int) Option {
	return func(e *Executor) {
		e.suggestionDistance = distance
	}
}

// WithLineIDGenerator overrides how line ids are produced.
func WithLineIDGenerator(fn func() string) Option {
	return func(e *Executor) {
		if fn != nil {
			e.newLineID = fn
		}
	}
}

// NewExecutor creates an executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		suggestionDistance: DefaultSuggestionDistance,
		newLineID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute resolves fullCommand starting at root. fullCommand[0] is the
// command word that selected root and is not visited again.
//
// Every visited node is transformed, checked and then run. When the tokens
// run out on a terminal node, that terminal runs with the last token. When
// they run out on an intermediate node nothing runs and the result carries
// the node's suggestions.
func (e *Executor) Execute(ctx context.Context, root domain.Node, fullCommand []string) (*domain.Result, error) {
	if len(fullCommand) == 0 {
		return nil, domain.ErrEmptyLine
	}
	if root == nil {
		return nil, errors.New("runtime: nil root node")
	}

	lineID := e.newLineID()
	started := time.Now()
	logger := e.logger.With("line_id", lineID, "command", fullCommand[0])
	e.emitLineStart(ctx, lineID, fullCommand)

	result := &domain.Result{LineID: lineID}
	current := root

	for i := 1; current != nil && i < len(fullCommand); i++ {
		next, err := e.step(ctx, logger, lineID, current, i, fullCommand)
		if err != nil {
			e.annotate(err, current, i)
			e.emitLineEnd(ctx, lineID, fullCommand, "", err, started)
			logger.Debug("line failed", "position", i, "err", err)
			return nil, err
		}
		result.Steps++
		current = next
	}

	switch {
	case current == nil:
		result.Outcome = domain.OutcomeExecuted

	case current.Kind() == domain.KindTerminal:
		// The last token selected a terminal; it runs with that token.
		last := len(fullCommand) - 1
		if _, err := e.step(ctx, logger, lineID, current, last, fullCommand); err != nil {
			e.emitLineEnd(ctx, lineID, fullCommand, "", err, started)
			logger.Debug("line failed", "position", last, "err", err)
			return nil, err
		}
		result.Steps++
		result.Outcome = domain.OutcomeExecuted

	default:
		result.Outcome = domain.OutcomeIncomplete
		result.Suggestions = suggestionsOf(current)
	}

	e.emitLineEnd(ctx, lineID, fullCommand, result.Outcome, nil, started)
	logger.Debug("line resolved", "outcome", result.Outcome, "steps", result.Steps)
	return result, nil
}

// step runs transform, check and run for one node and one position.
func (e *Executor) step(ctx context.Context, logger *slog.Logger, lineID string, node domain.Node, pos int, fullCommand []string) (domain.Node, error) {
	token := node.TransformToken(fullCommand[pos])
	e.emitStep(ctx, domain.EventNodeEnter, lineID, fullCommand[0], pos, token, node)

	if err := node.CheckCanRun(token); err != nil {
		return nil, err
	}
	next, err := node.Run(token, fullCommand)
	if err != nil {
		return nil, err
	}

	logger.Debug("node run", "position", pos, "token", token, "kind", node.Kind())
	e.emitStep(ctx, domain.EventNodeRun, lineID, fullCommand[0], pos, token, node)
	return next, nil
}

// annotate fills in the position and a close candidate on unresolved tokens
// raised by node itself.
func (e *Executor) annotate(err error, node domain.Node, pos int) {
	var unresolved *domain.UnresolvedTokenError
	if !errors.As(err, &unresolved) || unresolved.Position != 0 {
		return
	}
	unresolved.Position = pos
	if router, ok := node.(domain.Router); ok && unresolved.Suggestion == "" {
		unresolved.Suggestion = closest(unresolved.Token, router.PossibleSubCommands(), e.suggestionDistance)
	}
}

func suggestionsOf(node domain.Node) *domain.Suggestions {
	router, ok := node.(domain.Router)
	if !ok {
		return &domain.Suggestions{Message: domain.DefaultAutocompleteMessage}
	}
	return &domain.Suggestions{
		Candidates: router.PossibleSubCommands(),
		Message:    router.DefaultAutocompleteMessage(),
	}
}

func (e *Executor) emitLineStart(ctx context.Context, lineID string, fullCommand []string) {
	if e.hooks.OnLineStart == nil {
		return
	}
	e.hooks.OnLineStart(ctx, &domain.LineEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventLineStart,
			LineID:    lineID,
		},
		Command: fullCommand[0],
		Tokens:  len(fullCommand),
	})
}

func (e *Executor) emitLineEnd(ctx context.Context, lineID string, fullCommand []string, outcome domain.Outcome, err error, started time.Time) {
	if e.hooks.OnLineEnd == nil {
		return
	}
	e.hooks.OnLineEnd(ctx, &domain.LineEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventLineEnd,
			LineID:    lineID,
		},
		Command:  fullCommand[0],
		Tokens:   len(fullCommand),
		Outcome:  outcome,
		Err:      err,
		Duration: time.Since(started),
	})
}

func (e *Executor) emitStep(ctx context.Context, typ domain.EventType, lineID, command string, pos int, token string, node domain.Node) {
	hook := e.hooks.OnNodeEnter
	if typ == domain.EventNodeRun {
		hook = e.hooks.OnNodeRun
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			LineID:    lineID,
		},
		Command:  command,
		Position: pos,
		Token:    token,
		NodeKind: node.Kind(),
	})
}
