package sandbox

import (
	"strconv"
	"strings"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/templates"
)

const notParsed = "could not parse previous command"

var (
	addError     = domain.Lines(notParsed, "options are:", "* add [id] {count} {upgrade amt}")
	removeError  = domain.Lines(notParsed, "options are:", "* remove [id]", "* remove all")
	discardError = domain.Lines(notParsed, "options are:", "* discard [id]", "* discard all")
	setError     = domain.Lines(notParsed, "options are:",
		"* set damage [id] [amount]", "* set block [id] [amount]",
		"* set magic [id] [amount]", "* set cost [id] [amount]")
	handError = domain.Lines(notParsed, "options are:",
		"* add [id] {count} {upgrade amt}", "* remove [id]", "* remove all",
		"* discard [id]", "* discard all", "* set damage [id] [amount]",
		"* set block [id] [amount]", "* set magic [id] [amount]",
		"* set cost [id] [amount]", "* show")
)

// cardSetter changes one attribute of a card.
type cardSetter func(c *Card, v int)

func (h *Host) handCommand() *command.Intermediate {
	hand := command.NewIntermediate(command.IntermediateConfig{ErrorMessage: handError})
	// Only full words are suggested, not a, d, r, s.
	hand.SetPossibleSubCommands(templates.LongOnly(hand.SubCommandTokens))

	h.addCommand(hand)
	h.removeCommand(hand)
	h.discardCommand(hand)
	h.setCommand(hand)
	hand.PutSubCommand("show", command.NewTerminal(h.executeShow, command.TerminalConfig{
		CanRun: h.requirePlayer("show cards"),
	}))
	return hand
}

func (h *Host) cardIDs() command.CandidatesFunc {
	return templates.IDs(h.library)
}

func (h *Host) addCommand(hand *command.Intermediate) {
	end := command.NewTerminal(h.executeAdd, command.TerminalConfig{})

	add := command.NewIntermediate(command.IntermediateConfig{
		Possible:     h.cardIDs(),
		ErrorMessage: addError,
		CanRun:       h.requirePlayer("add cards"),
		// hand add [id]
		ShouldRunEnd: func(_ string, full []string) bool { return len(full) == 3 },
	})
	add.SetEndCommand(end)
	hand.PutSubCommand("add", add, "a")

	count := templates.NewSmallNumberTemplate()
	// hand add [id] [count]
	count.SetEndCommandChecker(func(_ string, full []string) bool { return len(full) == 4 })
	count.SetDefaultErrorMessage(addError)
	count.SetEndCommand(end)
	add.SetDefaultSubCommand(count)

	upgrades := templates.NewSmallNumberTemplate()
	upgrades.SetDefaultErrorMessage(addError)
	upgrades.SetDefaultSubCommand(end)
	count.SetDefaultSubCommand(upgrades)
}

// executeAdd reads "hand add <id words...> {count} {upgrades}". Trailing
// numbers belong to count and upgrades; the words before them are the id.
func (h *Host) executeAdd(_ string, full []string) error {
	countIndex := len(full) - 1
	for countIndex > 2 && parseCount(full[countIndex]) != 0 {
		countIndex--
	}
	name := h.cardName(full[2 : countIndex+1])

	card, ok := h.library.Card(name)
	if !ok {
		return domain.Preconditionf("could not find card %s", name)
	}

	count := 1
	if len(full) > countIndex+1 {
		if n := parseCount(full[countIndex+1]); n != 0 {
			count = n
		}
	}
	upgrades := 0
	if len(full) > countIndex+2 {
		upgrades = parseCount(full[countIndex+2])
	}

	h.log("adding %s of %s with %d upgrade(s)", plural(count, "copy", "copies"), card.ID, upgrades)
	for i := 0; i < count; i++ {
		c := card
		for j := 0; j < upgrades; j++ {
			c.Upgrade()
		}
		h.Player.Hand = append(h.Player.Hand, c)
	}
	return nil
}

func (h *Host) removeCommand(hand *command.Intermediate) {
	remove := command.NewIntermediate(command.IntermediateConfig{
		Possible:     templates.WithAll(h.cardIDs()),
		ErrorMessage: removeError,
		CanRun:       h.requirePlayer("remove cards"),
	})
	remove.SetDefaultSubCommand(command.NewTerminal(h.executeRemove, command.TerminalConfig{}))
	hand.PutSubCommand("remove", remove, "r")
}

func (h *Host) executeRemove(_ string, full []string) error {
	moved := h.moveFromHand(full, &h.Player.Exhaust)
	h.log("exhausted %s", plural(moved, "card", "cards"))
	return nil
}

func (h *Host) discardCommand(hand *command.Intermediate) {
	discard := command.NewIntermediate(command.IntermediateConfig{
		Possible:     templates.WithAll(h.cardIDs()),
		ErrorMessage: discardError,
		CanRun:       h.requirePlayer("discard cards"),
	})
	discard.SetDefaultSubCommand(command.NewTerminal(h.executeDiscard, command.TerminalConfig{}))
	hand.PutSubCommand("discard", discard, "d")
}

func (h *Host) executeDiscard(_ string, full []string) error {
	moved := h.moveFromHand(full, &h.Player.Discard)
	h.log("discarded %s", plural(moved, "card", "cards"))
	return nil
}

// moveFromHand moves every card ("all") or the first card named by
// full[2:] to pile and returns how many moved.
func (h *Host) moveFromHand(full []string, pile *[]Card) int {
	if strings.EqualFold(full[2], templates.All) {
		moved := len(h.Player.Hand)
		*pile = append(*pile, h.Player.Hand...)
		h.Player.Hand = nil
		return moved
	}

	name := h.cardName(full[2:])
	for i, c := range h.Player.Hand {
		if strings.EqualFold(c.ID, name) {
			*pile = append(*pile, c)
			h.Player.Hand = append(h.Player.Hand[:i], h.Player.Hand[i+1:]...)
			return 1
		}
	}
	return 0
}

func (h *Host) setCommand(hand *command.Intermediate) {
	set := command.NewIntermediate(command.IntermediateConfig{
		ErrorMessage: setError,
		CanRun:       h.requirePlayer("set card attributes"),
	})
	// Only full words are suggested, not d, b, m, c.
	set.SetPossibleSubCommands(templates.LongOnly(set.SubCommandTokens))
	hand.PutSubCommand("set", set, "s")

	h.setAttribute(set, "damage", "d", templates.NewMediumNumberTemplate(), func(c *Card, v int) {
		if c.Damage != v {
			c.Modified = true
		}
		c.Damage = v
	})
	h.setAttribute(set, "block", "b", templates.NewMediumNumberTemplate(), func(c *Card, v int) {
		if c.Block != v {
			c.Modified = true
		}
		c.Block = v
	})
	h.setAttribute(set, "magic", "m", templates.NewMediumNumberTemplate(), func(c *Card, v int) {
		if c.Magic != v {
			c.Modified = true
		}
		c.Magic = v
	})
	h.setAttribute(set, "cost", "c", templates.NewSmallNumberTemplate(), func(c *Card, v int) {
		c.Cost = v
	})
}

func (h *Host) setAttribute(set *command.Intermediate, word, alias string, value *command.Intermediate, apply cardSetter) {
	attr := command.NewIntermediate(command.IntermediateConfig{
		Possible:     templates.WithAll(h.cardIDs()),
		ErrorMessage: setError,
	})
	set.PutSubCommand(word, attr, alias)

	value.SetDefaultErrorMessage(setError)
	attr.SetDefaultSubCommand(value)

	value.SetDefaultSubCommand(command.NewTerminal(func(_ string, full []string) error {
		return h.executeSet(word, full, apply)
	}, command.TerminalConfig{}))
}

// executeSet reads "hand set <attr> <id words...|all> <amount>".
func (h *Host) executeSet(attr string, full []string, apply cardSetter) error {
	numberToken := full[len(full)-1]
	v, err := strconv.Atoi(numberToken)
	if err != nil {
		return domain.Preconditionf("%s is not a valid number", numberToken)
	}

	all := strings.EqualFold(full[3], templates.All)
	name := h.cardName(full[3 : len(full)-1])
	changed := 0
	for i := range h.Player.Hand {
		c := &h.Player.Hand[i]
		if all || strings.EqualFold(c.ID, name) {
			apply(c, v)
			changed++
			if !all {
				break
			}
		}
	}
	h.log("set %s to %d on %s", attr, v, plural(changed, "card", "cards"))
	return nil
}

func (h *Host) executeShow(string, []string) error {
	if len(h.Player.Hand) == 0 {
		h.log("hand is empty")
		return nil
	}
	for i, c := range h.Player.Hand {
		h.log("%d: %s (cost %d, damage %d, block %d, magic %d, +%d)",
			i, c.ID, c.Cost, c.Damage, c.Block, c.Magic, c.Upgrades)
	}
	return nil
}

// parseCount returns the positive number in token, or 0.
func parseCount(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
