package dsl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// Builder manages the construction of root commands.
type Builder struct {
	roots map[string]*NodeBuilder
}

// New creates a new command tree builder.
func New() *Builder {
	return &Builder{
		roots: make(map[string]*NodeBuilder),
	}
}

// Add creates a root command.
// If the command already exists, it returns the existing builder.
func (b *Builder) Add(word string) *NodeBuilder {
	if nb, ok := b.roots[word]; ok {
		return nb
	}
	nb := newNodeBuilder(word, nil, command.NewIntermediate(command.IntermediateConfig{}))
	b.roots[word] = nb
	return nb
}

// Build returns the root nodes by command word. It fails when a command
// is empty or an intermediate has no way to route a token.
func (b *Builder) Build() (map[string]domain.Node, error) {
	words := make([]string, 0, len(b.roots))
	for word := range b.roots {
		words = append(words, word)
	}
	sort.Strings(words)

	var errs []error
	out := make(map[string]domain.Node, len(b.roots))
	for _, word := range words {
		if word == "" {
			errs = append(errs, fmt.Errorf("empty command word"))
			continue
		}
		nb := b.roots[word]
		errs = append(errs, nb.validate(make(map[*command.Intermediate]bool))...)
		out[word] = nb.node
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid command tree: %w", errors.Join(errs...))
	}
	return out, nil
}
