package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// Tree is a set of root commands, such as a devconsole.Console.
type Tree interface {
	Commands() []string
	Root(word string) (domain.Node, bool)
}

// ValidateTree crawls every root command and reports intermediates that
// cannot resolve any token, nil sub-commands, and autocomplete candidates
// that would not resolve.
func ValidateTree(tree Tree) error {
	type item struct {
		path []string
		node domain.Node
	}

	visited := make(map[domain.Node]bool)
	var queue []item
	for _, word := range tree.Commands() {
		root, ok := tree.Root(word)
		if !ok || root == nil {
			continue
		}
		queue = append(queue, item{path: []string{word}, node: root})
	}

	var errors []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.node] {
			continue
		}
		visited[current.node] = true

		in, ok := current.node.(*command.Intermediate)
		if !ok {
			continue
		}
		where := strings.Join(current.path, " ")
		next := func(token string, n domain.Node) {
			path := append(current.path[:len(current.path):len(current.path)], token)
			queue = append(queue, item{path: path, node: n})
		}

		tokens := in.SubCommandTokens()
		def := in.DefaultSubCommand()
		end := in.EndCommand()
		if len(tokens) == 0 && def == nil && end == nil {
			errors = append(errors, fmt.Sprintf("'%s' cannot resolve any token", where))
			continue
		}

		for _, token := range tokens {
			sub, _ := in.SubCommand(token)
			if sub == nil {
				errors = append(errors, fmt.Sprintf("'%s %s' maps to no command", where, token))
				continue
			}
			next(token, sub)
		}
		if def != nil {
			next("any", def)
		}
		if end != nil {
			next("end", end)
		}

		if def != nil {
			continue
		}
		// Without a default every candidate must be a registry key.
		for _, candidate := range in.PossibleSubCommands() {
			if _, ok := in.SubCommand(in.TransformToken(candidate)); !ok {
				errors = append(errors, fmt.Sprintf("'%s' suggests '%s' which does not resolve", where, candidate))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
