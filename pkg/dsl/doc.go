/*
Package dsl provides a fluent builder for devconsole command trees.

It wires command.Intermediate and command.Terminal nodes without the
boilerplate of creating each node and registering it on its parent by hand.

Example usage:

	package main

	import (
		"github.com/aretw0/devconsole"
		"github.com/aretw0/devconsole/pkg/dsl"
		"github.com/aretw0/devconsole/pkg/templates"
	)

	func main() {
		b := dsl.New()

		b.Add("debug").
			Error("could not parse previous command", "options are:", "* true", "* false").
			Do("true", setDebug(true)).
			Do("false", setDebug(false))

		b.Add("potion").
			On("remove", "r").
			Suggest(templates.Slots(potionSlots)).
			DefaultDo(removePotion)

		cmds, err := b.Build()
		if err != nil {
			panic(err)
		}

		console := devconsole.New()
		_ = console.RegisterAll(cmds)
	}
*/
package dsl
