package command

import (
	"sort"

	"github.com/aretw0/devconsole/pkg/domain"
)

// IntermediateConfig customizes an Intermediate. The zero value is valid.
type IntermediateConfig struct {
	// Transform normalizes the token before lookup. Defaults to FoldCase.
	Transform TransformFunc

	// CanRun is the precondition checker. Nil means always runnable.
	CanRun CheckFunc

	// ShouldRunEnd triggers the short-circuit into the end command.
	// Nil means never.
	ShouldRunEnd EndPredicate

	// Possible overrides the autocomplete candidates. Nil means the
	// registry keys.
	Possible CandidatesFunc

	// AutocompleteMessage defaults to domain.DefaultAutocompleteMessage.
	AutocompleteMessage string

	// ErrorMessage defaults to domain.DefaultErrorMessage.
	ErrorMessage string
}

// Intermediate routes a token to the next node of the chain.
type Intermediate struct {
	cfg         IntermediateConfig
	subCommands map[string]domain.Node
	defaultSub  domain.Node
	end         *Terminal
}

var _ domain.Router = (*Intermediate)(nil)

// NewIntermediate creates an intermediate node with an empty registry.
func NewIntermediate(cfg IntermediateConfig) *Intermediate {
	return &Intermediate{
		cfg:         cfg,
		subCommands: make(map[string]domain.Node),
	}
}

func (n *Intermediate) Kind() domain.Kind { return domain.KindIntermediate }

func (n *Intermediate) TransformToken(raw string) string {
	return transformOrDefault(n.cfg.Transform)(raw)
}

// CheckCanRun calls the configured checker, if any.
func (n *Intermediate) CheckCanRun(token string) error {
	if n.cfg.CanRun == nil {
		return nil
	}
	return n.cfg.CanRun(token)
}

// Run returns the next node for token. When the end predicate holds and an
// end command is set, the end command is transformed, checked and run here,
// and its result (no next node) is returned.
func (n *Intermediate) Run(token string, fullCommand []string) (domain.Node, error) {
	if n.end != nil && n.shouldRunEnd(token, fullCommand) {
		endToken := n.end.TransformToken(token)
		if err := n.end.CheckCanRun(endToken); err != nil {
			return nil, err
		}
		return n.end.Run(endToken, fullCommand)
	}
	return n.resolve(token)
}

// Lookup resolves like Run without running the end command.
func (n *Intermediate) Lookup(token string, fullCommand []string) (domain.Node, error) {
	if n.end != nil && n.shouldRunEnd(token, fullCommand) {
		return n.end, nil
	}
	return n.resolve(token)
}

func (n *Intermediate) shouldRunEnd(token string, fullCommand []string) bool {
	return n.cfg.ShouldRunEnd != nil && n.cfg.ShouldRunEnd(token, fullCommand)
}

// resolve prefers a literal registry entry over the default.
func (n *Intermediate) resolve(token string) (domain.Node, error) {
	if next, ok := n.subCommands[token]; ok {
		return next, nil
	}
	if n.defaultSub != nil {
		return n.defaultSub, nil
	}
	return nil, &domain.UnresolvedTokenError{
		Message: n.DefaultErrorMessage(),
		Token:   token,
	}
}

// PossibleSubCommands returns the configured candidates, or the sorted
// registry keys.
func (n *Intermediate) PossibleSubCommands() []string {
	if n.cfg.Possible != nil {
		return n.cfg.Possible()
	}
	return n.SubCommandTokens()
}

// SubCommandTokens returns the registry keys in sorted order.
func (n *Intermediate) SubCommandTokens() []string {
	keys := make([]string, 0, len(n.subCommands))
	for k := range n.subCommands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *Intermediate) DefaultAutocompleteMessage() string {
	if n.cfg.AutocompleteMessage == "" {
		return domain.DefaultAutocompleteMessage
	}
	return n.cfg.AutocompleteMessage
}

func (n *Intermediate) DefaultErrorMessage() string {
	if n.cfg.ErrorMessage == "" {
		return domain.DefaultErrorMessage
	}
	return n.cfg.ErrorMessage
}

// PutSubCommand maps token (and any aliases) to next, replacing existing entries.
func (n *Intermediate) PutSubCommand(token string, next domain.Node, aliases ...string) {
	n.subCommands[token] = next
	for _, alias := range aliases {
		n.subCommands[alias] = next
	}
}

// SubCommand returns the node mapped to token.
func (n *Intermediate) SubCommand(token string) (domain.Node, bool) {
	next, ok := n.subCommands[token]
	return next, ok
}

// RemoveSubCommand unmaps token and returns the node it was mapped to, or nil.
func (n *Intermediate) RemoveSubCommand(token string) domain.Node {
	next, ok := n.subCommands[token]
	if !ok {
		return nil
	}
	delete(n.subCommands, token)
	return next
}

// SetDefaultSubCommand sets the fallback for unmapped tokens. Nil means only
// mapped tokens are valid.
func (n *Intermediate) SetDefaultSubCommand(next domain.Node) {
	n.defaultSub = next
}

func (n *Intermediate) DefaultSubCommand() domain.Node {
	return n.defaultSub
}

// SetEndCommand sets the terminal run when the end predicate holds.
func (n *Intermediate) SetEndCommand(end *Terminal) {
	n.end = end
}

func (n *Intermediate) EndCommand() *Terminal {
	return n.end
}

func (n *Intermediate) SetPossibleSubCommands(fn CandidatesFunc) {
	n.cfg.Possible = fn
}

func (n *Intermediate) SetCanRunChecker(fn CheckFunc) {
	n.cfg.CanRun = fn
}

func (n *Intermediate) SetEndCommandChecker(fn EndPredicate) {
	n.cfg.ShouldRunEnd = fn
}

func (n *Intermediate) SetDefaultAutocompleteMessage(msg string) {
	n.cfg.AutocompleteMessage = msg
}

func (n *Intermediate) SetDefaultErrorMessage(msg string) {
	n.cfg.ErrorMessage = msg
}

func (n *Intermediate) SetTransform(fn TransformFunc) {
	n.cfg.Transform = fn
}
