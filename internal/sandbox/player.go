package sandbox

import (
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/dsl"
)

var playerError = []string{"could not parse previous command", "options are:", "* spawn", "* kill"}

func (h *Host) playerCommand() *command.Intermediate {
	return dsl.New().Add("player").
		Error(playerError...).
		Do("spawn", func(string, []string) error {
			if h.Player != nil {
				return domain.Preconditionf("player already exists")
			}
			h.Player = &Player{}
			h.log("player spawned")
			return nil
		}).
		Do("kill", func(string, []string) error {
			if h.Player == nil {
				return domain.Preconditionf("player doesn't exist")
			}
			h.Player = nil
			h.log("player killed")
			return nil
		}).
		Node()
}
