package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring an intermediate node.
type NodeBuilder struct {
	path     string
	parent   *NodeBuilder
	node     *command.Intermediate
	children []*NodeBuilder
}

func newNodeBuilder(path string, parent *NodeBuilder, node *command.Intermediate) *NodeBuilder {
	nb := &NodeBuilder{path: path, parent: parent, node: node}
	if parent != nil {
		parent.children = append(parent.children, nb)
	}
	return nb
}

// On registers a new intermediate under token (and aliases) and returns
// its builder.
func (n *NodeBuilder) On(token string, aliases ...string) *NodeBuilder {
	return n.OnNode(token, command.NewIntermediate(command.IntermediateConfig{}), aliases...)
}

// OnNode registers an existing intermediate, such as a template, under
// token and returns its builder.
func (n *NodeBuilder) OnNode(token string, node *command.Intermediate, aliases ...string) *NodeBuilder {
	n.node.PutSubCommand(token, node, aliases...)
	return newNodeBuilder(n.path+" "+token, n, node)
}

// Do registers a terminal under token (and aliases).
func (n *NodeBuilder) Do(token string, fn command.RunFunc, aliases ...string) *NodeBuilder {
	n.node.PutSubCommand(token, command.NewTerminal(fn, command.TerminalConfig{}), aliases...)
	return n
}

// DoTerminal registers a configured terminal under token (and aliases).
func (n *NodeBuilder) DoTerminal(token string, t *command.Terminal, aliases ...string) *NodeBuilder {
	n.node.PutSubCommand(token, t, aliases...)
	return n
}

// Default sets a new intermediate as the fallback and returns its builder.
func (n *NodeBuilder) Default() *NodeBuilder {
	return n.DefaultNode(command.NewIntermediate(command.IntermediateConfig{}))
}

// DefaultNode sets an existing intermediate as the fallback and returns
// its builder.
func (n *NodeBuilder) DefaultNode(node *command.Intermediate) *NodeBuilder {
	n.node.SetDefaultSubCommand(node)
	return newNodeBuilder(n.path+" <default>", n, node)
}

// DefaultDo sets a terminal as the fallback.
func (n *NodeBuilder) DefaultDo(fn command.RunFunc) *NodeBuilder {
	return n.DefaultTerminal(command.NewTerminal(fn, command.TerminalConfig{}))
}

// DefaultTerminal sets a configured terminal as the fallback.
func (n *NodeBuilder) DefaultTerminal(t *command.Terminal) *NodeBuilder {
	n.node.SetDefaultSubCommand(t)
	return n
}

// EndWhen sets the end command and the predicate that triggers it.
func (n *NodeBuilder) EndWhen(pred command.EndPredicate, t *command.Terminal) *NodeBuilder {
	n.node.SetEndCommandChecker(pred)
	n.node.SetEndCommand(t)
	return n
}

// EndAt short-circuits into t when the line has exactly length tokens.
func (n *NodeBuilder) EndAt(length int, t *command.Terminal) *NodeBuilder {
	return n.EndWhen(func(_ string, full []string) bool { return len(full) == length }, t)
}

// Suggest sets the autocomplete candidates.
func (n *NodeBuilder) Suggest(fn command.CandidatesFunc) *NodeBuilder {
	n.node.SetPossibleSubCommands(fn)
	return n
}

// Check sets the precondition checker.
func (n *NodeBuilder) Check(fn command.CheckFunc) *NodeBuilder {
	n.node.SetCanRunChecker(fn)
	return n
}

// Hint sets the default autocomplete message.
func (n *NodeBuilder) Hint(msg string) *NodeBuilder {
	n.node.SetDefaultAutocompleteMessage(msg)
	return n
}

// Error sets the default error message, one argument per line.
func (n *NodeBuilder) Error(lines ...string) *NodeBuilder {
	n.node.SetDefaultErrorMessage(domain.Lines(lines...))
	return n
}

// Transform sets the token transform.
func (n *NodeBuilder) Transform(fn command.TransformFunc) *NodeBuilder {
	n.node.SetTransform(fn)
	return n
}

// Up returns the builder of the parent node, or n itself for a root.
func (n *NodeBuilder) Up() *NodeBuilder {
	if n.parent == nil {
		return n
	}
	return n.parent
}

// Node returns the node being built.
func (n *NodeBuilder) Node() *command.Intermediate {
	return n.node
}

// validate reports intermediates that cannot route any token.
func (n *NodeBuilder) validate(visited map[*command.Intermediate]bool) []error {
	if visited[n.node] {
		return nil
	}
	visited[n.node] = true

	var errs []error
	if len(n.node.SubCommandTokens()) == 0 && n.node.DefaultSubCommand() == nil && n.node.EndCommand() == nil {
		errs = append(errs, fmt.Errorf("%s: no sub commands, default or end command", strings.TrimSpace(n.path)))
	}
	for _, child := range n.children {
		errs = append(errs, child.validate(visited)...)
	}
	return errs
}
