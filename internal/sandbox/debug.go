package sandbox

import (
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
)

// DebugError is shown for anything but true or false.
var DebugError = domain.Lines("could not parse previous command", "options are:", "* true", "* false")

func (h *Host) debugCommand() *command.Intermediate {
	debug := command.NewIntermediate(command.IntermediateConfig{ErrorMessage: DebugError})
	debug.PutSubCommand("true", command.Action(func(string, []string) { h.setDebug(true) }))
	debug.PutSubCommand("false", command.Action(func(string, []string) { h.setDebug(false) }))
	return debug
}

func (h *Host) setDebug(debug bool) {
	h.Settings.Debug = debug
	h.log("Setting debug mode to: %t", debug)
}
