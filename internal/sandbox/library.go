package sandbox

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/devconsole/pkg/adapters/memory"
	"github.com/aretw0/devconsole/pkg/ports"
)

// Card is one card of the library or of a pile.
type Card struct {
	ID       string `json:"id"`
	Damage   int    `json:"damage"`
	Block    int    `json:"block"`
	Magic    int    `json:"magic"`
	Cost     int    `json:"cost"`
	Upgrades int    `json:"upgrades"`
	Modified bool   `json:"modified"`
}

// Upgrade raises the upgrade count once.
func (c *Card) Upgrade() {
	c.Upgrades++
}

// CardSpecs looks up the base stats of a card id.
type CardSpecs func(id string) (Card, bool)

// AttributeSpecs reads card stats from loose attributes, such as the extra
// keys of a catalog entry. Unknown keys are ignored and the cost defaults
// to 1.
func AttributeSpecs(lookup func(id string) (map[string]any, bool)) CardSpecs {
	return func(id string) (Card, bool) {
		attrs, ok := lookup(id)
		if !ok {
			return Card{}, false
		}
		c := Card{ID: id, Cost: 1}
		if err := mapstructure.WeakDecode(attrs, &c); err != nil {
			return Card{}, false
		}
		return c, true
	}
}

// Library resolves card ids to cards. Which ids exist comes from an
// IDSource; stats come from an optional spec lookup.
type Library struct {
	src   ports.IDSource
	specs CardSpecs
}

// NewLibrary creates a library. specs may be nil, in which case cards get
// zero stats and a cost of 1.
func NewLibrary(src ports.IDSource, specs CardSpecs) *Library {
	return &Library{src: src, specs: specs}
}

// DefaultLibrary is a handful of built-in cards.
func DefaultLibrary() *Library {
	cards := map[string]Card{
		"Strike_R":         {ID: "Strike_R", Damage: 6, Cost: 1},
		"Defend_R":         {ID: "Defend_R", Block: 5, Cost: 1},
		"Bash":             {ID: "Bash", Damage: 8, Magic: 2, Cost: 2},
		"Perfected Strike": {ID: "Perfected Strike", Damage: 6, Magic: 2, Cost: 2},
		"Ghostly Armor":    {ID: "Ghostly Armor", Block: 10, Cost: 1},
	}
	ids := memory.NewSet()
	for id := range cards {
		ids.Add(id)
	}
	return NewLibrary(ids, func(id string) (Card, bool) {
		c, ok := cards[id]
		return c, ok
	})
}

// IDs lists the card ids, as reported by the source.
func (l *Library) IDs() []string {
	if l.src == nil {
		return nil
	}
	return l.src.IDs()
}

// Card returns a fresh copy of the card named id. An exact match wins over
// a case-insensitive one.
func (l *Library) Card(id string) (Card, bool) {
	match := ""
	for _, known := range l.IDs() {
		if known == id {
			match = known
			break
		}
		if match == "" && strings.EqualFold(known, id) {
			match = known
		}
	}
	if match == "" {
		return Card{}, false
	}
	if l.specs != nil {
		if c, ok := l.specs(match); ok {
			c.ID = match
			return c, true
		}
	}
	return Card{ID: match, Cost: 1}, true
}
