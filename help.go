package devconsole

import (
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// HelpCommand is the word of the built-in help command.
const HelpCommand = "help"

// newHelp lists the commands, or the options of one command.
//
//	help        -> every registered command
//	help hand   -> the candidates of hand
func (c *Console) newHelp() *command.Terminal {
	return command.NewTerminal(func(token string, full []string) error {
		if len(full) < 2 {
			c.Logf("%s", c.HelpMarkdown())
			return nil
		}
		root, ok := c.Root(token)
		if !ok {
			return domain.Preconditionf("no help for unknown command %s", token)
		}
		c.Logf("%s", commandHelp(token, root))
		return nil
	}, command.TerminalConfig{})
}

// HelpMarkdown renders the command table as a markdown list.
func (c *Console) HelpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Commands\n\n")
	for _, name := range c.Commands() {
		sb.WriteString("* `" + name + "`\n")
	}
	sb.WriteString("\nType `help <command>` for its options.")
	return sb.String()
}

func commandHelp(word string, root domain.Node) string {
	router, ok := root.(domain.Router)
	if !ok {
		return "# " + word + "\n\nTakes no options."
	}
	var sb strings.Builder
	sb.WriteString("# " + word + "\n\n")
	options := router.PossibleSubCommands()
	if len(options) == 0 {
		sb.WriteString(router.DefaultAutocompleteMessage())
		return sb.String()
	}
	for _, option := range options {
		sb.WriteString("* `" + option + "`\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
