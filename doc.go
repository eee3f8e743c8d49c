/*
Package devconsole is a tokenized command-resolution engine for developer consoles.

A console line is split on whitespace. The first token selects a root
command; every following token is routed through a chain of command nodes,
one token per node, until a terminal node performs its side effect.

# Concept

There are two kinds of nodes. An intermediate node maps a token to the next
node through its own registry, falling back to a default node when the token
is not registered. It may also short-circuit into an end command when a
predicate over the token and the whole line holds, which is how variable
length arguments are handled. A terminal node runs a callback and ends the
chain.

For every node on the path the engine transforms the token (case folding by
default), checks the node's precondition and only then runs it. Autocomplete
walks the same path without running anything and lists the candidates of the
node the cursor is on. Candidates are advisory: a node with a default accepts
tokens that were never suggested.

# Usage

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/aretw0/devconsole"
		"github.com/aretw0/devconsole/pkg/command"
	)

	func main() {
		console := devconsole.New(devconsole.WithOutput(os.Stdout))

		debug := command.NewIntermediate(command.IntermediateConfig{})
		debug.PutSubCommand("true", command.Action(func(string, []string) {
			fmt.Println("debug on")
		}))
		debug.PutSubCommand("false", command.Action(func(string, []string) {
			fmt.Println("debug off")
		}))
		if err := console.Register("debug", debug); err != nil {
			panic(err)
		}

		if _, err := console.Execute(context.Background(), "debug true"); err != nil {
			fmt.Println(err)
		}
	}

# Packages

  - pkg/command: Intermediate and Terminal nodes.
  - pkg/dsl: A fluent builder for command trees.
  - pkg/templates: Numeric argument nodes and id candidate helpers.
  - pkg/runner: A line loop over any reader and writer.
  - pkg/adapters: HTTP, MCP, redis and catalog file integrations.
*/
package devconsole
