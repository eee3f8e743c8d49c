package command

import (
	"github.com/aretw0/devconsole/pkg/domain"
)

// RunFunc is the side effect of a Terminal.
type RunFunc func(token string, fullCommand []string) error

// TerminalConfig customizes a Terminal. The zero value is valid.
type TerminalConfig struct {
	// Transform normalizes the token. Defaults to FoldCase.
	Transform TransformFunc
	// CanRun is the precondition checker. Nil means always runnable.
	CanRun CheckFunc
}

// Terminal performs a side effect and ends the chain.
type Terminal struct {
	onRun RunFunc
	cfg   TerminalConfig
}

var _ domain.Node = (*Terminal)(nil)

// NewTerminal creates a terminal node. It panics if onRun is nil, since a
// terminal without a side effect is a wiring mistake.
func NewTerminal(onRun RunFunc, cfg TerminalConfig) *Terminal {
	if onRun == nil {
		panic("command: the onRun callback of a terminal must not be nil")
	}
	return &Terminal{onRun: onRun, cfg: cfg}
}

// Action creates a terminal from a callback that cannot fail.
func Action(fn func(token string, fullCommand []string)) *Terminal {
	if fn == nil {
		panic("command: the action of a terminal must not be nil")
	}
	return NewTerminal(func(token string, fullCommand []string) error {
		fn(token, fullCommand)
		return nil
	}, TerminalConfig{})
}

func (t *Terminal) Kind() domain.Kind { return domain.KindTerminal }

func (t *Terminal) TransformToken(raw string) string {
	return transformOrDefault(t.cfg.Transform)(raw)
}

// CheckCanRun calls the configured checker, if any.
func (t *Terminal) CheckCanRun(token string) error {
	if t.cfg.CanRun == nil {
		return nil
	}
	return t.cfg.CanRun(token)
}

// Run performs the side effect. The next node is always nil.
func (t *Terminal) Run(token string, fullCommand []string) (domain.Node, error) {
	return nil, t.onRun(token, fullCommand)
}

// SetCanRunChecker replaces the precondition checker. Nil disables it.
func (t *Terminal) SetCanRunChecker(fn CheckFunc) {
	t.cfg.CanRun = fn
}

// SetTransform replaces the token transform. Nil restores FoldCase.
func (t *Terminal) SetTransform(fn TransformFunc) {
	t.cfg.Transform = fn
}
