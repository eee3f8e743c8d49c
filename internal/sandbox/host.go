package sandbox

import (
	"fmt"
	"strings"

	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/templates"
)

// Settings are the global switches of the host.
type Settings struct {
	Debug bool
}

// Player holds the card piles. A nil player means no run is in progress.
type Player struct {
	Hand    []Card
	Discard []Card
	Exhaust []Card
}

// Host is the application state the console commands act on.
type Host struct {
	Settings Settings
	Player   *Player

	library *Library
	logf    func(format string, args ...any)
}

// NewHost creates a host without a player. logf receives the command output.
func NewHost(library *Library, logf func(format string, args ...any)) *Host {
	if library == nil {
		library = DefaultLibrary()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Host{library: library, logf: logf}
}

// Library returns the card library.
func (h *Host) Library() *Library {
	return h.library
}

// Commands returns the root commands of the host by command word.
func (h *Host) Commands() map[string]domain.Node {
	return map[string]domain.Node{
		"debug":  h.debugCommand(),
		"hand":   h.handCommand(),
		"player": h.playerCommand(),
	}
}

// requirePlayer builds a checker failing with "cannot <action> when player
// doesn't exist".
func (h *Host) requirePlayer(action string) func(string) error {
	return func(string) error {
		if h.Player == nil {
			return domain.Preconditionf("cannot %s when player doesn't exist", action)
		}
		return nil
	}
}

// cardName joins tokens into a card id, undoing the underscore form of ids
// that contain spaces.
func (h *Host) cardName(tokens []string) string {
	name := strings.Join(tokens, " ")
	ids := h.library.IDs()
	if id := templates.NewIDIndex(ids).FromUnderscoreID(name); id != name {
		return id
	}
	for _, id := range ids {
		if strings.EqualFold(templates.ToUnderscoreID(id), name) {
			return id
		}
	}
	return name
}

func (h *Host) log(format string, args ...any) {
	h.logf(format, args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
