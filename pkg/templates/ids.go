package templates

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/ports"
)

// All is the candidate that selects every entity.
const All = "all"

// ToUnderscoreID replaces every space of id with an underscore, so the id
// fits in one token.
func ToUnderscoreID(id string) string {
	return strings.ReplaceAll(id, " ", "_")
}

// IDs maps the ids of src to their token form. src is queried on every call.
func IDs(src ports.IDSource) command.CandidatesFunc {
	return func() []string {
		if src == nil {
			return nil
		}
		ids := src.IDs()
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, ToUnderscoreID(id))
		}
		return out
	}
}

// WithAll adds the "all" candidate to fn.
func WithAll(fn command.CandidatesFunc) command.CandidatesFunc {
	return func() []string {
		return append(fn(), All)
	}
}

// LongOnly hides one letter candidates, which are usually aliases.
func LongOnly(fn command.CandidatesFunc) command.CandidatesFunc {
	return func() []string {
		var out []string
		for _, c := range fn() {
			if utf8.RuneCountInString(c) > 1 {
				out = append(out, c)
			}
		}
		return out
	}
}

// Slots returns "0" to "n-1", for indexed containers such as potion slots.
// n is read on every call; zero or less yields no candidates.
func Slots(n func() int) command.CandidatesFunc {
	return func() []string {
		size := n()
		if size <= 0 {
			return nil
		}
		out := make([]string, 0, size)
		for i := 0; i < size; i++ {
			out = append(out, strconv.Itoa(i))
		}
		return out
	}
}

// IDIndex maps the token form of ids back to the ids themselves.
type IDIndex map[string]string

// NewIDIndex indexes ids that contain spaces.
func NewIDIndex(ids []string) IDIndex {
	idx := make(IDIndex)
	for _, id := range ids {
		if token := ToUnderscoreID(id); token != id {
			idx[token] = id
		}
	}
	return idx
}

// FromUnderscoreID returns the id written as name, or name itself when it
// is not an indexed token form.
func (idx IDIndex) FromUnderscoreID(name string) string {
	if id, ok := idx[name]; ok {
		return id
	}
	return name
}
