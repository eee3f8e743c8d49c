/*
Package command provides the two node variants of a command chain.

An Intermediate maps a token to the next node through its own registry, with
an optional default fallback and an optional end command it can short-circuit
into. A Terminal performs a side effect and ends the chain.

Behavior is customized through explicit configuration structs rather than
subclassing:

	count := command.NewIntermediate(command.IntermediateConfig{
		AutocompleteMessage: "number",
		ShouldRunEnd: func(token string, full []string) bool {
			return len(full) == 4
		},
	})
	count.SetEndCommand(command.NewTerminal(addCards, command.TerminalConfig{}))

Registry keys are compared with transformed tokens, so they should be
registered in transformed form (lower case with the default transform).
*/
package command
